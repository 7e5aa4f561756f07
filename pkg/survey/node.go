package survey

import (
	"strings"

	"github.com/google/uuid"
)

// Kind identifies a node variant.
type Kind string

const (
	KindDocument        Kind = "survey"
	KindPage            Kind = "page"
	KindPanel           Kind = "panel"
	KindQuestion        Kind = "question"
	KindColumn          Kind = "column"
	KindChoice          Kind = "choice"
	KindValidator       Kind = "validator"
	KindTrigger         Kind = "trigger"
	KindCalculatedValue Kind = "calculatedvalue"
	KindHTMLCondition   Kind = "htmlcondition"
)

// Property names shared by several node kinds.
const (
	PropName                   = "name"
	PropTitle                  = "title"
	PropVisibleIf              = "visibleIf"
	PropEnableIf               = "enableIf"
	PropRequiredIf             = "requiredIf"
	PropExpression             = "expression"
	PropDefaultValueExpression = "defaultValueExpression"
	PropMinValueExpression     = "minValueExpression"
	PropMaxValueExpression     = "maxValueExpression"
	PropChoicesVisibleIf       = "choicesVisibleIf"
	PropChoicesEnableIf        = "choicesEnableIf"
	PropRowsVisibleIf          = "rowsVisibleIf"
	PropColumnsVisibleIf       = "columnsVisibleIf"
	PropTotalExpression        = "totalExpression"
	PropRunExpression          = "runExpression"
	PropSetToName              = "setToName"
	PropFromName               = "fromName"
	PropGotoName               = "gotoName"
	PropSetValue               = "setValue"
	PropHTML                   = "html"
	PropText                   = "text"
	PropValue                  = "value"
)

// Node is the common surface of every tree node.
type Node interface {
	// ID returns the stable identity of the node. It never changes for the node's lifetime.
	ID() string
	Kind() Kind
	// Type returns the concrete type inside the kind (e.g. "text" for a question,
	// "complete" for a trigger). It is empty for kinds without subtypes.
	Type() string
	Name() string
	// Title returns the display title, falling back to the name.
	Title() string
	// Parent returns the containing node, or nil for the document and detached nodes.
	Parent() Node
	// Props lists the property names this node declares, in declaration order.
	Props() []string
	// Prop reads a declared property. ok is false for undeclared names.
	Prop(name string) (value string, ok bool)
	// SetProp writes a declared property. It returns false for undeclared names.
	SetProp(name, value string) bool
	// Extras returns the properties the node does not declare, as read from the
	// source document. The engine never reads or writes them.
	Extras() map[string]any
	SetExtras(extras map[string]any)
	// Literal returns the source value of a declared property that was not a
	// string, e.g. the number 1 behind a choice value "1".
	Literal(name string) (any, bool)
	SetLiteral(name string, value any)
}

// field binds a property name to its storage in a concrete struct.
type field struct {
	name string
	ref  *string
}

func fieldNames(fields []field) []string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.name
	}
	return names
}

func getField(fields []field, name string) (string, bool) {
	for _, f := range fields {
		if f.name == name {
			return *f.ref, true
		}
	}
	return "", false
}

func setField(fields []field, name, value string) bool {
	for _, f := range fields {
		if f.name == name {
			*f.ref = value
			return true
		}
	}
	return false
}

// base carries identity, the parent link and the pass-through source data shared
// by all variants.
type base struct {
	id       string
	parent   Node
	extras   map[string]any
	literals map[string]any
}

func newBase() base {
	return base{id: uuid.NewString()}
}

// ID returns the identity assigned by the constructor. Nodes built as zero values
// get one on first use.
func (b *base) ID() string {
	if b.id == "" {
		b.id = uuid.NewString()
	}
	return b.id
}

func (b *base) Parent() Node { return b.parent }

func (b *base) Extras() map[string]any { return b.extras }

func (b *base) SetExtras(extras map[string]any) {
	if len(extras) == 0 {
		b.extras = nil
		return
	}
	b.extras = extras
}

func (b *base) Literal(name string) (any, bool) {
	v, ok := b.literals[name]
	return v, ok
}

func (b *base) SetLiteral(name string, value any) {
	if b.literals == nil {
		b.literals = make(map[string]any)
	}
	b.literals[name] = value
}

func titleOr(title, name string) string {
	if strings.TrimSpace(title) != "" {
		return title
	}
	return name
}

// Root walks the parent chain of n and returns the document it belongs to, or nil
// when the node is detached.
func Root(n Node) *Document {
	for n != nil {
		if d, ok := n.(*Document); ok {
			return d
		}
		n = n.Parent()
	}
	return nil
}

// named carries the name/title pair of nameable nodes.
type named struct {
	NodeName  string
	NodeTitle string
}

func (n *named) Name() string  { return n.NodeName }
func (n *named) Title() string { return titleOr(n.NodeTitle, n.NodeName) }
