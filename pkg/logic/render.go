package logic

import (
	"fmt"

	"github.com/aretw0/logica/pkg/expression"
	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
)

// ItemSummary returns the heading of a rule item.
func (e *Editor) ItemSummary(item *Item) string {
	return fmt.Sprintf("When expression: '%s' returns true:", e.formatExpression(item.expression))
}

// BindingText describes what a binding does, computed from the current document.
func (e *Editor) BindingText(b *Binding) string {
	return b.kind.Render(registry.RenderContext{
		Owner:      b.owner,
		Expression: b.expression,
		Extras:     b.Extras(),
		Label:      e.questionLabel,
		Expr:       e.formatExpression,
	})
}

// KindText returns the label of a kind for menus.
func KindText(k registry.Kind) string {
	if k.DisplayName != "" {
		return k.DisplayName
	}
	return k.Name
}

func (e *Editor) formatExpression(expr string) string {
	if !e.opts.ShowTitles {
		return expr
	}
	return expression.ReplaceVariables(expr, e.questionLabel)
}

// questionLabel shows a referenced question by title when titles are enabled.
func (e *Editor) questionLabel(name string) string {
	if !e.opts.ShowTitles {
		return name
	}
	if q := e.doc.QuestionByName(name); q != nil {
		return q.Title()
	}
	return name
}

func (e *Editor) nodeLabel(n survey.Node) string {
	if e.opts.ShowTitles {
		return n.Title()
	}
	return n.Name()
}
