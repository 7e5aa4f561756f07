package logic

import (
	"regexp"
	"strings"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
)

type propertyMode int

const (
	// modeExpression values hold expression text with {name} references.
	modeExpression propertyMode = iota
	// modeReference values are a bare question name.
	modeReference
)

type accessor struct {
	property string
	mode     propertyMode
}

// Expression properties every node kind may declare besides the registered ones.
var genericExpressionProps = []string{
	survey.PropExpression,
	survey.PropRunExpression,
	survey.PropTotalExpression,
	survey.PropDefaultValueExpression,
	survey.PropMinValueExpression,
	survey.PropMaxValueExpression,
}

// Name-reference properties by owner kind.
var referenceProps = map[survey.Kind][]string{
	survey.KindTrigger: {survey.PropSetToName, survey.PropFromName, survey.PropGotoName},
}

var renameKinds = []survey.Kind{
	survey.KindPage,
	survey.KindPanel,
	survey.KindQuestion,
	survey.KindColumn,
	survey.KindChoice,
	survey.KindValidator,
	survey.KindTrigger,
	survey.KindCalculatedValue,
	survey.KindHTMLCondition,
}

// renameTable maps each node kind to the properties that may mention an identifier.
// Nodes that do not declare a listed property are skipped at lookup.
func renameTable(reg *registry.Registry) map[survey.Kind][]accessor {
	var exprProps []string
	seen := make(map[string]bool)
	for _, p := range append(reg.Properties(), genericExpressionProps...) {
		if !seen[p] {
			seen[p] = true
			exprProps = append(exprProps, p)
		}
	}

	table := make(map[survey.Kind][]accessor, len(renameKinds))
	for _, k := range renameKinds {
		var list []accessor
		for _, p := range exprProps {
			list = append(list, accessor{p, modeExpression})
		}
		for _, p := range referenceProps[k] {
			list = append(list, accessor{p, modeReference})
		}
		table[k] = list
	}
	return table
}

// referencePattern matches {name}, {name.path} and {name[index]} for one name,
// ignoring case. Groups: opening brace with padding, the name, the rest up to the
// closing brace.
func referencePattern(prefix, name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(\{\s*` + prefix + `)(` + regexp.QuoteMeta(name) + `)(\s*(?:[.\[][^{}]*)?\})`)
}

func replaceReferences(re *regexp.Regexp, value, newName string) string {
	return re.ReplaceAllString(value, "${1}"+strings.ReplaceAll(newName, "$", "$$")+"${3}")
}

// RenamePropagate rewrites every reference to oldName in doc. Inside expressions only
// whole {oldName} tokens change, so renaming q1 leaves {q10} and {myq1} alone;
// name-reference properties change when their whole value equals oldName.
// Both comparisons ignore case. It returns the number of properties changed.
func RenamePropagate(doc *survey.Document, reg *registry.Registry, oldName, newName string) int {
	oldName = strings.TrimSpace(oldName)
	if oldName == "" || oldName == newName {
		return 0
	}
	table := renameTable(reg)
	re := referencePattern("", oldName)

	changed := 0
	survey.Walk(doc, func(n survey.Node) bool {
		for _, a := range table[n.Kind()] {
			v, ok := n.Prop(a.property)
			if !ok || v == "" {
				continue
			}
			var next string
			switch a.mode {
			case modeExpression:
				next = replaceReferences(re, v, newName)
			case modeReference:
				next = v
				if strings.EqualFold(strings.TrimSpace(v), oldName) {
					next = newName
				}
			}
			if next != v {
				n.SetProp(a.property, next)
				changed++
			}
		}
		return true
	})
	return changed
}

// RenameColumn rewrites {row.oldName} references inside the column expressions of
// a matrix question after one of its columns was renamed.
func RenameColumn(matrix *survey.Question, oldName, newName string) int {
	oldName = strings.TrimSpace(oldName)
	if matrix == nil || oldName == "" || oldName == newName {
		return 0
	}
	re := referencePattern(`row\s*\.\s*`, oldName)
	props := []string{survey.PropVisibleIf, survey.PropEnableIf, survey.PropRequiredIf, survey.PropTotalExpression}

	changed := 0
	for _, c := range matrix.Columns {
		for _, p := range props {
			v, ok := c.Prop(p)
			if !ok || v == "" {
				continue
			}
			if next := replaceReferences(re, v, newName); next != v {
				c.SetProp(p, next)
				changed++
			}
		}
	}
	return changed
}

func isGenericExpression(property string) bool {
	for _, p := range genericExpressionProps {
		if p == property {
			return true
		}
	}
	return false
}

// renameStaged applies a rename made outside the editor to the staged item, so a
// later Save does not write the old name back.
func (e *Editor) renameStaged(re *regexp.Regexp, oldName, newName string) {
	if e.editable == nil {
		return
	}
	e.editable.expression = replaceReferences(re, e.editable.expression, newName)
	for _, b := range e.editable.bindings {
		b.expression = replaceReferences(re, b.expression, newName)
		for _, f := range b.kind.Extras {
			v := b.extras[f.Name]
			switch {
			case f.Ref:
				if v != "" && strings.EqualFold(strings.TrimSpace(v), oldName) {
					b.extras[f.Name] = newName
				}
			case isGenericExpression(f.Name):
				b.extras[f.Name] = replaceReferences(re, v, newName)
			}
		}
	}
}

// RenamePropagate renames through the editor's document and registry and reports
// the change to the hooks. The item lists are not refreshed; call Rescan.
func (e *Editor) RenamePropagate(oldName, newName string) int {
	changed := RenamePropagate(e.doc, e.reg, oldName, newName)
	e.opts.Logger.Debug("logic rename", "old", oldName, "new", newName, "changed", changed)
	if e.opts.Hooks.OnRename != nil {
		e.opts.Hooks.OnRename(&RenameEvent{OldName: oldName, NewName: newName, Changed: changed})
	}
	return changed
}
