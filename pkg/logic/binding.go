package logic

import (
	"fmt"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/schema"
	"github.com/aretw0/logica/pkg/survey"
)

// Binding is one occurrence of an expression on one owner node.
type Binding struct {
	kind       registry.Kind
	owner      survey.Node
	expression string
	extras     map[string]string

	// origin is the committed binding a staged copy was cloned from.
	origin *Binding
	err    error
}

func newBinding(k registry.Kind, owner survey.Node, expression string) *Binding {
	b := &Binding{
		kind:       k,
		owner:      owner,
		expression: expression,
		extras:     make(map[string]string, len(k.Extras)),
	}
	for _, f := range k.Extras {
		v := ""
		if owner != nil {
			v, _ = owner.Prop(f.Name)
		}
		b.extras[f.Name] = v
	}
	return b
}

// Kind returns the binding kind.
func (b *Binding) Kind() registry.Kind { return b.kind }

// Owner returns the node carrying the expression. Staged bindings of selected kinds
// may have no owner yet; staged bindings of created kinds have none until commit.
func (b *Binding) Owner() survey.Node { return b.owner }

// Expression returns the expression the binding was discovered with.
func (b *Binding) Expression() string { return b.expression }

// SetOwner resolves the target of a staged binding.
func (b *Binding) SetOwner(n survey.Node) error {
	if b.kind.Owner == registry.OwnerCreated {
		return fmt.Errorf("%s: owner is created on save", b.kind.Name)
	}
	if n != nil && !b.kind.Matches(n) {
		return fmt.Errorf("%s: %s %q cannot own this binding", b.kind.Name, n.Kind(), n.Name())
	}
	b.owner = n
	b.err = nil
	return nil
}

// Extra returns the current value of an extra field.
func (b *Binding) Extra(name string) string { return b.extras[name] }

// SetExtra stages a value for an extra field declared by the kind.
func (b *Binding) SetExtra(name, value string) bool {
	if _, ok := b.kind.Extra(name); !ok {
		return false
	}
	b.extras[name] = value
	b.err = nil
	return true
}

// Extras returns a copy of the extra field values.
func (b *Binding) Extras() map[string]string {
	out := make(map[string]string, len(b.extras))
	for k, v := range b.extras {
		out[k] = v
	}
	return out
}

// Err returns the problem found by the last validation, if any.
func (b *Binding) Err() error { return b.err }

// HasError reports whether the last validation rejected the binding.
func (b *Binding) HasError() bool { return b.err != nil }

// Valid checks the binding against its kind without recording the result.
// An owner that left the document is not an error here; commit drops such bindings.
func (b *Binding) Valid(doc *survey.Document) error {
	if b.kind.Owner == registry.OwnerSelected {
		if b.owner == nil {
			return fmt.Errorf("%s: target is not selected", b.kind.Name)
		}
	}
	if len(b.kind.Extras) == 0 {
		return nil
	}
	return schema.Validate(b.kind.Schema(doc), schema.Strings(b.extras))
}

func (b *Binding) clone() *Binding {
	c := *b
	c.extras = b.Extras()
	c.origin = b
	c.err = nil
	return &c
}

// sameAs reports whether b and o collapse into one binding on save.
func (b *Binding) sameAs(o *Binding) bool {
	return b.kind.Name == o.kind.Name && b.owner == o.owner && equalExtras(b.extras, o.extras)
}

func equalExtras(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if w, ok := b[k]; !ok || w != v {
			return false
		}
	}
	return true
}

// Item is a rule item: the bindings sharing one expression.
type Item struct {
	expression string
	bindings   []*Binding
}

// Expression returns the shared, trimmed expression.
func (it *Item) Expression() string { return it.expression }

// Bindings returns the bindings in discovery order.
func (it *Item) Bindings() []*Binding {
	out := make([]*Binding, len(it.bindings))
	copy(out, it.bindings)
	return out
}

// Len returns the number of bindings.
func (it *Item) Len() int { return len(it.bindings) }

func (it *Item) uses(kindName string) bool {
	for _, b := range it.bindings {
		if b.kind.Name == kindName {
			return true
		}
	}
	return false
}

func (it *Item) clone() *Item {
	c := &Item{expression: it.expression, bindings: make([]*Binding, len(it.bindings))}
	for i, b := range it.bindings {
		c.bindings[i] = b.clone()
	}
	return c
}
