package registry

import (
	"fmt"
	"strings"

	"github.com/aretw0/logica/pkg/schema"
	"github.com/aretw0/logica/pkg/survey"
)

// OwnerMode says where the owner of a new binding comes from.
type OwnerMode int

const (
	// OwnerSelected bindings attach to an existing node the user picks.
	OwnerSelected OwnerMode = iota
	// OwnerCreated bindings create a fresh entry in a document collection on commit.
	OwnerCreated
)

func (m OwnerMode) String() string {
	if m == OwnerCreated {
		return "created"
	}
	return "selected"
}

// ExtraField describes an auxiliary field a binding carries next to its expression.
// The value lives in the owner property of the same name.
type ExtraField struct {
	Name string
	Type schema.Type
	// Ref marks fields holding the name of a question.
	Ref bool
}

// Required reports whether the field must hold a non-blank value.
func (f ExtraField) Required() bool {
	_, ok := f.Type.(*schema.NonEmptyType)
	return ok
}

// RenderContext is the input of a kind's text function.
type RenderContext struct {
	Owner      survey.Node
	Expression string
	Extras     map[string]string
	// Label formats a referenced node name (owner or question) for display.
	Label func(name string) string
	// Expr formats an expression embedded in the text.
	Expr func(expr string) string
}

// OwnerLabel returns the display label of the owner, or "" without an owner.
func (c RenderContext) OwnerLabel() string {
	if c.Owner == nil {
		return ""
	}
	if t := c.Owner.Title(); t != "" {
		return t
	}
	return c.Owner.Name()
}

// Ref returns the display label of the question named by extra field name.
func (c RenderContext) Ref(name string) string {
	v := c.Extras[name]
	if v == "" || c.Label == nil {
		return v
	}
	return c.Label(v)
}

// Formula returns the display form of an expression.
func (c RenderContext) Formula(expr string) string {
	if c.Expr == nil {
		return expr
	}
	return c.Expr(expr)
}

// Kind is a binding kind: the association of an owner predicate with an expression property.
type Kind struct {
	Name        string
	DisplayName string
	Property    string
	// OwnerKind is the node kind owners belong to; Match narrows it further.
	OwnerKind     survey.Kind
	Match         func(survey.Node) bool
	ShowInUI      bool
	HideWhenInUse bool
	Owner         OwnerMode
	// Create builds a detached owner for OwnerCreated kinds.
	Create    func() survey.Node
	Extras    []ExtraField
	Available func(*survey.Document) bool
	Text      func(RenderContext) string
}

// Matches reports whether n can own a binding of this kind.
func (k Kind) Matches(n survey.Node) bool {
	if n == nil || n.Kind() != k.OwnerKind {
		return false
	}
	if _, ok := n.Prop(k.Property); !ok {
		return false
	}
	return k.Match == nil || k.Match(n)
}

// IsAvailable reports whether the kind can be offered for doc.
func (k Kind) IsAvailable(doc *survey.Document) bool {
	if !k.ShowInUI {
		return false
	}
	return k.Available == nil || k.Available(doc)
}

// Extra returns the template of the named extra field.
func (k Kind) Extra(name string) (ExtraField, bool) {
	for _, f := range k.Extras {
		if f.Name == name {
			return f, true
		}
	}
	return ExtraField{}, false
}

// Render produces the text of a binding of this kind. It never fails: without a text
// function, or when the text function has nothing to say, it falls back to a generic
// "<property> condition".
func (k Kind) Render(ctx RenderContext) string {
	if k.Text != nil {
		if s := k.Text(ctx); s != "" {
			return s
		}
	}
	return k.Property + " condition"
}

// Schema builds the validation schema for the extra fields, resolving question
// references against doc.
func (k Kind) Schema(doc *survey.Document) schema.Schema {
	s := make(schema.Schema, len(k.Extras))
	for _, f := range k.Extras {
		typ := f.Type
		if typ == nil {
			typ = schema.String()
		}
		if f.Ref {
			typ = questionRef(doc, typ)
		}
		s[f.Name] = typ
	}
	return s
}

func questionRef(doc *survey.Document, inner schema.Type) schema.Type {
	return schema.Custom(inner.Name(), func(v any) error {
		if err := inner.Validate(v); err != nil {
			return err
		}
		name, _ := v.(string)
		if strings.TrimSpace(name) == "" || doc == nil {
			return nil
		}
		if doc.QuestionByName(name) == nil {
			return fmt.Errorf("question %q does not exist", name)
		}
		return nil
	})
}
