// Package graph renders the rule dependency graph of a survey document.
package graph

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/aretw0/logica/pkg/expression"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/survey"
)

// Rule is one logic item reduced to what the graph draws.
type Rule struct {
	Expression string
	// Variables are the names the expression reads.
	Variables []string
	Targets   []Target
}

// Target is a node a rule acts on.
type Target struct {
	Kind  survey.Kind
	Name  string
	Label string
	// Refs are questions named by the binding's extra fields, keyed by field.
	Refs map[string]string
}

// GraphOverlay highlights the rules depending on one variable.
type GraphOverlay struct {
	Focus string
}

// FromItems converts scanned items into rules.
func FromItems(items []*logic.Item) []Rule {
	rules := make([]Rule, 0, len(items))
	for _, it := range items {
		r := Rule{Expression: it.Expression(), Variables: roots(it.Expression())}
		for _, b := range it.Bindings() {
			t := Target{Label: b.Kind().DisplayName}
			if t.Label == "" {
				t.Label = b.Kind().Name
			}
			if o := b.Owner(); o != nil {
				t.Kind = o.Kind()
				t.Name = o.Name()
			}
			for _, f := range b.Kind().Extras {
				if v := strings.TrimSpace(b.Extra(f.Name)); f.Ref && v != "" {
					if t.Refs == nil {
						t.Refs = make(map[string]string)
					}
					t.Refs[f.Name] = v
				}
			}
			r.Targets = append(r.Targets, t)
		}
		rules = append(rules, r)
	}
	return rules
}

// roots returns the distinct variable roots of expr, so {q1.a} and {q1[0]} both read q1.
func roots(expr string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, v := range expression.Variables(expr) {
		root := expression.Root(v)
		if key := strings.ToLower(root); root != "" && !seen[key] {
			seen[key] = true
			out = append(out, root)
		}
	}
	return out
}

// GenerateMermaid produces a Mermaid flowchart of the rules:
//   - variables and questions: [/Parallelogram/]
//   - rules: {Rhombus}
//   - pages and panels: [[Subroutine]]
//   - triggers and other created owners: ((Circle))
//
// Questions share one node whether read or acted on, so chains of rules connect.
func GenerateMermaid(rules []Rule, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	declared := make(map[string]bool)
	declare := func(id, shape string) {
		if !declared[id] {
			declared[id] = true
			sb.WriteString("    " + id + shape + "\n")
		}
	}
	question := func(name string) string {
		id := "q_" + sanitizeMermaidID(strings.ToLower(name))
		declare(id, fmt.Sprintf(`[/"%s"/]`, escape(name)))
		return id
	}

	var focused []string
	focus := ""
	if overlay != nil {
		focus = strings.ToLower(overlay.Focus)
	}

	for i, r := range rules {
		ruleID := fmt.Sprintf("rule_%d", i+1)
		declare(ruleID, fmt.Sprintf(`{"%s"}`, escape(r.Expression)))

		for _, v := range r.Variables {
			fmt.Fprintf(&sb, "    %s --> %s\n", question(v), ruleID)
			if focus != "" && strings.ToLower(v) == focus {
				focused = append(focused, ruleID)
			}
		}

		for j, t := range r.Targets {
			var targetID string
			switch t.Kind {
			case survey.KindQuestion, survey.KindCalculatedValue:
				targetID = question(t.Name)
			case survey.KindPage, survey.KindPanel:
				targetID = string(t.Kind) + "_" + sanitizeMermaidID(strings.ToLower(t.Name))
				declare(targetID, fmt.Sprintf(`[["%s"]]`, escape(t.Name)))
			default:
				name := t.Name
				if name == "" {
					name = string(t.Kind)
				}
				targetID = fmt.Sprintf("%s_%d", ruleID, j+1)
				declare(targetID, fmt.Sprintf(`(("%s"))`, escape(name)))
			}
			fmt.Fprintf(&sb, "    %s -- \"%s\" --> %s\n", ruleID, escape(t.Label), targetID)

			fields := make([]string, 0, len(t.Refs))
			for f := range t.Refs {
				fields = append(fields, f)
			}
			sort.Strings(fields)
			for _, f := range fields {
				fmt.Fprintf(&sb, "    %s -. \"%s\" .-> %s\n", targetID, f, question(t.Refs[f]))
			}
		}
	}

	if overlay != nil && overlay.Focus != "" {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Black text keeps contrast on light fills in both themes.
		sb.WriteString("    classDef focus fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")
		sb.WriteString("    classDef affected fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		id := "q_" + sanitizeMermaidID(focus)
		if declared[id] {
			fmt.Fprintf(&sb, "    class %s focus;\n", id)
		}
		for _, ruleID := range focused {
			fmt.Fprintf(&sb, "    class %s affected;\n", ruleID)
		}
	}

	return sb.String()
}

// escape keeps labels inside their double quotes.
func escape(s string) string {
	return strings.ReplaceAll(s, `"`, "'")
}

func sanitizeMermaidID(id string) string {
	return strings.Map(func(r rune) rune {
		if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return '_'
	}, id)
}
