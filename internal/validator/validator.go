// Package validator lints the logic of a survey document.
package validator

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/aretw0/logica/pkg/expression"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/schema"
	"github.com/aretw0/logica/pkg/survey"
)

// Severity grades an Issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// contextRoots are variable roots resolved by the runtime, not by the document.
var contextRoots = map[string]bool{
	"row":         true,
	"panel":       true,
	"parentpanel": true,
	"item":        true,
	"choice":      true,
	"composite":   true,
}

// Issue is one finding on one property.
type Issue struct {
	Severity Severity
	Node     string
	Property string
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s.%s: %s", i.Severity, i.Node, i.Property, i.Message)
}

// Checker lints documents against a registry.
type Checker struct {
	reg    *registry.Registry
	syntax func(string) error
}

// Option configures the Checker.
type Option func(*Checker)

// WithSyntaxCheck replaces the expression syntax check.
func WithSyntaxCheck(fn func(expr string) error) Option {
	return func(c *Checker) {
		c.syntax = fn
	}
}

// New creates a Checker. A nil registry means the built-in kinds.
func New(reg *registry.Registry, opts ...Option) *Checker {
	if reg == nil {
		reg = registry.NewDefault()
	}
	c := &Checker{reg: reg, syntax: expression.Check}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check returns the issues of doc ordered by traversal, errors before warnings per property.
func (c *Checker) Check(doc *survey.Document) []Issue {
	known := make(map[string]bool)
	for _, name := range doc.VariableNames() {
		known[strings.ToLower(name)] = true
	}

	var issues []Issue
	for _, b := range logic.Discover(doc, c.reg) {
		node := label(b.Owner())
		prop := b.Kind().Property

		if err := c.syntax(b.Expression()); err != nil {
			issues = append(issues, Issue{SeverityError, node, prop, err.Error()})
		}
		if err := b.Valid(doc); err != nil {
			issues = append(issues, extraIssues(node, err)...)
		}

		var unknown []string
		for _, v := range expression.Variables(b.Expression()) {
			root := strings.ToLower(expression.Root(v))
			if root == "" || known[root] || contextRoots[root] {
				continue
			}
			unknown = append(unknown, v)
		}
		sort.Strings(unknown)
		for _, v := range unknown {
			issues = append(issues, Issue{SeverityWarning, node, prop, fmt.Sprintf("unknown variable {%s}", v)})
		}
	}
	return issues
}

func extraIssues(node string, err error) []Issue {
	list := schema.ValidationErrors(err)
	if list == nil {
		list = []error{err}
	}
	out := make([]Issue, 0, len(list))
	for _, e := range list {
		var ve *schema.ValidationError
		if errors.As(e, &ve) {
			out = append(out, Issue{SeverityError, node, ve.Key, ve.Reason})
			continue
		}
		out = append(out, Issue{SeverityError, node, "", e.Error()})
	}
	return out
}

// label names a node the way a user finds it in the document.
func label(n survey.Node) string {
	if n == nil {
		return "?"
	}
	switch n.Kind() {
	case survey.KindColumn, survey.KindChoice:
		if p := n.Parent(); p != nil {
			return p.Name() + "." + n.Name()
		}
	case survey.KindValidator:
		if p := n.Parent(); p != nil {
			return p.Name() + ".validators"
		}
	case survey.KindHTMLCondition:
		return "completedHtmlOnCondition"
	}
	if name := n.Name(); name != "" {
		return name
	}
	return string(n.Kind())
}

// Errors counts the issues of SeverityError.
func Errors(issues []Issue) int {
	n := 0
	for _, i := range issues {
		if i.Severity == SeverityError {
			n++
		}
	}
	return n
}

// Err folds the error issues into a single error, or nil when there are none.
func Err(issues []Issue) error {
	var lines []string
	for _, i := range issues {
		if i.Severity == SeverityError {
			lines = append(lines, i.String())
		}
	}
	if len(lines) == 0 {
		return nil
	}
	return fmt.Errorf("found %d errors:\n- %s", len(lines), strings.Join(lines, "\n- "))
}
