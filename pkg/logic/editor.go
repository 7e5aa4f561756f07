package logic

import (
	"fmt"
	"strings"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
)

// Mode is the state of the edit session.
type Mode string

const (
	ModeView Mode = "view"
	ModeNew  Mode = "new"
	ModeEdit Mode = "edit"
)

// Editor owns the rule items of one document and its single edit session.
type Editor struct {
	doc  *survey.Document
	reg  *registry.Registry
	opts Options

	items     []*Item
	invisible []*Item

	mode     Mode
	editable *Item
	// original is the committed item being edited in ModeEdit.
	original *Item
	err      error

	modified   []observer
	nextID     int
	committing bool
}

type observer struct {
	id int
	fn func()
}

// New creates an editor over doc. A nil registry means registry.NewDefault().
func New(doc *survey.Document, reg *registry.Registry, opts ...Option) *Editor {
	if reg == nil {
		reg = registry.NewDefault()
	}
	e := &Editor{
		doc:  doc,
		reg:  reg,
		opts: buildOptions(opts),
		mode: ModeView,
	}
	e.Rescan()
	return e
}

func (e *Editor) Document() *survey.Document  { return e.doc }
func (e *Editor) Registry() *registry.Registry { return e.reg }
func (e *Editor) Mode() Mode                   { return e.mode }
func (e *Editor) ReadOnly() bool               { return e.opts.ReadOnly }

// Items returns the rule items with at least one user-visible binding.
func (e *Editor) Items() []*Item { return append([]*Item(nil), e.items...) }

// InvisibleItems returns the rule items made of hidden kinds.
func (e *Editor) InvisibleItems() []*Item { return append([]*Item(nil), e.invisible...) }

// Editable returns the staged item, or nil in ModeView.
func (e *Editor) Editable() *Item { return e.editable }

// Err returns the error of the last rejected save.
func (e *Editor) Err() error { return e.err }

// ErrorText returns the user-facing message of the last rejected save.
func (e *Editor) ErrorText() string { return UserText(e.err) }

// Rescan rebuilds the item lists from the document.
func (e *Editor) Rescan() {
	e.items, e.invisible = Scan(e.doc, e.reg)
	e.opts.Logger.Debug("logic scan", "items", len(e.items), "invisible", len(e.invisible))
	if e.opts.Hooks.OnScan != nil {
		e.opts.Hooks.OnScan(&ScanEvent{Items: len(e.items), Invisible: len(e.invisible)})
	}
}

// OnModified registers fn to run once after every successful Save or RemoveItem.
// The returned function removes it.
func (e *Editor) OnModified(fn func()) (remove func()) {
	e.nextID++
	id := e.nextID
	e.modified = append(e.modified, observer{id: id, fn: fn})
	return func() {
		for i, o := range e.modified {
			if o.id == id {
				e.modified = append(e.modified[:i:i], e.modified[i+1:]...)
				return
			}
		}
	}
}

func (e *Editor) notifyModified() {
	for _, o := range append([]observer(nil), e.modified...) {
		o.fn()
	}
}

// AddNew starts a session for a new item, discarding any staged edits.
func (e *Editor) AddNew() error {
	if e.opts.ReadOnly {
		return ErrReadOnly
	}
	e.reset()
	e.mode = ModeNew
	e.editable = &Item{}
	return nil
}

// EditItem starts a session on a copy of item, discarding any staged edits.
func (e *Editor) EditItem(item *Item) error {
	if e.opts.ReadOnly {
		return ErrReadOnly
	}
	if !e.known(item) {
		return ErrUnknownItem
	}
	e.reset()
	e.mode = ModeEdit
	e.original = item
	e.editable = item.clone()
	return nil
}

// Cancel discards the staged item and returns to ModeView. The document is untouched.
func (e *Editor) Cancel() {
	e.reset()
}

func (e *Editor) reset() {
	e.mode = ModeView
	e.editable = nil
	e.original = nil
	e.err = nil
}

func (e *Editor) known(item *Item) bool {
	if item == nil {
		return false
	}
	for _, list := range [][]*Item{e.items, e.invisible} {
		for _, it := range list {
			if it == item {
				return true
			}
		}
	}
	return false
}

// Expression returns the staged expression.
func (e *Editor) Expression() string {
	if e.editable == nil {
		return ""
	}
	return e.editable.expression
}

// SetExpression stages a new expression for the item.
func (e *Editor) SetExpression(expr string) error {
	if e.editable == nil {
		return ErrNotEditing
	}
	e.editable.expression = expr
	return nil
}

// AddOperation stages a binding of the named kind. target may be nil and selected
// later; it must be nil for kinds whose owner is created on save.
func (e *Editor) AddOperation(kindName string, target survey.Node) (*Binding, error) {
	if e.editable == nil {
		return nil, ErrNotEditing
	}
	k, ok := e.reg.ByName(kindName)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kindName)
	}
	b := newBinding(k, nil, e.editable.expression)
	if target != nil {
		if err := b.SetOwner(target); err != nil {
			return nil, err
		}
		for _, f := range k.Extras {
			b.extras[f.Name], _ = target.Prop(f.Name)
		}
	}
	e.editable.bindings = append(e.editable.bindings, b)
	return b, nil
}

// RemoveOperation removes a staged binding.
func (e *Editor) RemoveOperation(b *Binding) error {
	if e.editable == nil {
		return ErrNotEditing
	}
	for i, cur := range e.editable.bindings {
		if cur == b {
			e.editable.bindings = append(e.editable.bindings[:i:i], e.editable.bindings[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("operation is not part of the edited item")
}

// AddableKinds lists the kinds that can be added to the staged item right now.
// Kinds hidden while in use are left out when the staged item already uses them.
func (e *Editor) AddableKinds() []registry.Kind {
	var out []registry.Kind
	for _, k := range e.reg.All() {
		if !k.IsAvailable(e.doc) {
			continue
		}
		if k.HideWhenInUse && e.editable != nil && e.editable.uses(k.Name) {
			continue
		}
		out = append(out, k)
	}
	return out
}

// Target is a candidate owner for a staged binding.
type Target struct {
	Node  survey.Node
	Label string
	// Disabled marks nodes already bound by another staged binding of the same kind.
	Disabled bool
}

// Targets lists the nodes that can own b, in document order.
func (e *Editor) Targets(b *Binding) []Target {
	if b == nil || b.kind.Owner != registry.OwnerSelected {
		return nil
	}
	used := make(map[survey.Node]bool)
	if e.editable != nil {
		for _, o := range e.editable.bindings {
			if o != b && o.kind.Name == b.kind.Name && o.owner != nil {
				used[o.owner] = true
			}
		}
	}
	var out []Target
	survey.Walk(e.doc, func(n survey.Node) bool {
		if b.kind.Matches(n) {
			out = append(out, Target{Node: n, Label: e.nodeLabel(n), Disabled: used[n]})
		}
		return true
	})
	return out
}

// SelectTarget resolves the owner of a staged binding by name, ignoring case.
func (e *Editor) SelectTarget(b *Binding, name string) error {
	if e.editable == nil {
		return ErrNotEditing
	}
	for _, t := range e.Targets(b) {
		if strings.EqualFold(t.Node.Name(), name) {
			return b.SetOwner(t.Node)
		}
	}
	return fmt.Errorf("%s: no target named %q", b.kind.Name, name)
}
