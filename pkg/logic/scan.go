package logic

import (
	"strings"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
)

// Discover returns every binding of doc in traversal order, ungrouped.
// At each node the kinds are tried in registration order.
func Discover(doc *survey.Document, reg *registry.Registry) []*Binding {
	kinds := reg.All()
	var out []*Binding
	survey.Walk(doc, func(n survey.Node) bool {
		for _, k := range kinds {
			if !k.Matches(n) {
				continue
			}
			v, _ := n.Prop(k.Property)
			if expr := strings.TrimSpace(v); expr != "" {
				out = append(out, newBinding(k, n, expr))
			}
		}
		return true
	})
	return out
}

// Scan groups the bindings of doc into rule items by exact trimmed expression.
// Items keep the order in which their expression first appears and bindings keep
// discovery order. Bindings of kinds hidden from users are grouped separately into
// invisible.
func Scan(doc *survey.Document, reg *registry.Registry) (items, invisible []*Item) {
	var visible, hidden grouper
	for _, b := range Discover(doc, reg) {
		if b.kind.ShowInUI {
			visible.add(b)
		} else {
			hidden.add(b)
		}
	}
	return visible.items, hidden.items
}

type grouper struct {
	items []*Item
	index map[string]*Item
}

func (g *grouper) add(b *Binding) {
	if g.index == nil {
		g.index = make(map[string]*Item)
	}
	it, ok := g.index[b.expression]
	if !ok {
		it = &Item{expression: b.expression}
		g.index[b.expression] = it
		g.items = append(g.items, it)
	}
	it.bindings = append(it.bindings, b)
}
