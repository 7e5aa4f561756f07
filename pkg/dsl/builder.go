package dsl

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/logica/pkg/adapters/memory"
	"github.com/aretw0/logica/pkg/survey"
)

// Builder manages the document construction.
type Builder struct {
	doc  *survey.Document
	errs []error
}

// New creates a new document builder.
func New() *Builder {
	return &Builder{doc: survey.NewDocument()}
}

func (b *Builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

// set writes a property, recording an error when n does not declare it.
func (b *Builder) set(n survey.Node, prop, value string) {
	if !n.SetProp(prop, value) {
		b.fail("%s %q has no property %q", n.Kind(), n.Name(), prop)
	}
}

// Title sets the document title.
func (b *Builder) Title(title string) *Builder {
	b.doc.DocTitle = title
	return b
}

// Page appends a page. An existing page of the same name is returned instead.
func (b *Builder) Page(name string) *ContainerBuilder {
	p := b.doc.PageByName(name)
	if p == nil {
		p = b.doc.AddPage(survey.NewPage(name))
	}
	return &ContainerBuilder{NodeBuilder: NodeBuilder{node: p, builder: b}, container: p}
}

// Trigger appends a trigger of the given type.
func (b *Builder) Trigger(typ string) *NodeBuilder {
	if typ == "" {
		b.fail("trigger without type")
	}
	t := b.doc.AddTrigger(survey.NewTrigger(typ))
	return &NodeBuilder{node: t, builder: b}
}

// CalculatedValue appends a calculated value.
func (b *Builder) CalculatedValue(name, expr string) *NodeBuilder {
	v := b.doc.AddCalculatedValue(survey.NewCalculatedValue(name))
	v.Expression = expr
	return &NodeBuilder{node: v, builder: b}
}

// CompletedHTML appends a conditional "thank you" page.
func (b *Builder) CompletedHTML(expr, html string) *NodeBuilder {
	c := survey.NewHTMLCondition()
	c.Expression = expr
	c.HTML = html
	b.doc.AddHTMLCondition(c)
	return &NodeBuilder{node: c, builder: b}
}

// Build checks the document and returns it.
func (b *Builder) Build() (*survey.Document, error) {
	errs := append([]error(nil), b.errs...)

	seen := make(map[string]bool)
	for _, name := range b.doc.VariableNames() {
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate name %q", name))
		}
		seen[key] = true
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return b.doc, nil
}

// BuildStore builds the document and stores it under id in a new memory store.
func (b *Builder) BuildStore(id string) (*memory.Store, error) {
	doc, err := b.Build()
	if err != nil {
		return nil, err
	}
	store := memory.NewStore()
	if err := store.Save(context.Background(), id, doc); err != nil {
		return nil, fmt.Errorf("failed to build memory store: %w", err)
	}
	return store, nil
}
