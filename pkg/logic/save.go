package logic

import (
	"strings"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
)

// Save validates the staged item and commits it. On failure it records the error,
// keeps the session open and returns false.
//
// Validation stops at the first failing rule: the expression must be valid, there
// must be at least one operation, and every operation must be well-formed. Staged
// bindings identical in kind, owner and extras are then merged silently.
func (e *Editor) Save() bool {
	if e.editable == nil {
		e.err = ErrNotEditing
		return false
	}
	for _, b := range e.editable.bindings {
		b.err = nil
	}

	expr := strings.TrimSpace(e.editable.expression)
	if expr == "" || !e.opts.Validator.ValidateSyntax(expr) {
		return e.reject(ErrInvalidExpression)
	}
	if len(e.editable.bindings) == 0 {
		return e.reject(ErrNoOperations)
	}
	var opErr OperationError
	for i, b := range e.editable.bindings {
		if err := b.Valid(e.doc); err != nil {
			b.err = err
			opErr.Failures = append(opErr.Failures, BindingFailure{Index: i, Binding: b, Err: err})
		}
	}
	if len(opErr.Failures) > 0 {
		return e.reject(&opErr)
	}

	bindings, merged := dedup(e.editable.bindings)
	ev := e.commit(expr, bindings)
	ev.Mode = e.mode
	ev.Merged = merged

	e.reset()
	e.Rescan()
	e.opts.Logger.Debug("logic item saved",
		"mode", ev.Mode, "expression", expr,
		"written", ev.Written, "cleared", ev.Cleared, "dropped", ev.Dropped, "merged", merged)
	if e.opts.Hooks.OnCommit != nil {
		e.opts.Hooks.OnCommit(&ev)
	}
	e.notifyModified()
	return true
}

func (e *Editor) reject(err error) bool {
	e.err = err
	e.opts.Logger.Debug("logic save rejected", "mode", e.mode, "error", err)
	if e.opts.Hooks.OnReject != nil {
		e.opts.Hooks.OnReject(&RejectEvent{Mode: e.mode, Err: err})
	}
	return false
}

func dedup(bindings []*Binding) ([]*Binding, int) {
	out := make([]*Binding, 0, len(bindings))
	for _, b := range bindings {
		dup := false
		for _, kept := range out {
			if kept.sameAs(b) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, b)
		}
	}
	return out, len(bindings) - len(out)
}

type slot struct {
	owner    survey.Node
	property string
}

// commit writes the bindings onto the document and clears the original bindings
// of an edited item that did not survive.
func (e *Editor) commit(expr string, bindings []*Binding) CommitEvent {
	e.committing = true
	defer func() { e.committing = false }()

	var ev CommitEvent
	ev.Expression = expr
	written := make(map[slot]bool)
	kept := make(map[*Binding]bool)

	for _, b := range bindings {
		owner := b.owner
		created := false
		if owner == nil && b.kind.Owner == registry.OwnerCreated && b.kind.Create != nil {
			owner = b.kind.Create()
			created = true
		}
		if owner == nil || (!created && !e.doc.Contains(owner)) {
			ev.Dropped++
			continue
		}
		owner.SetProp(b.kind.Property, expr)
		for name, v := range b.extras {
			owner.SetProp(name, v)
		}
		if created && !attach(e.doc, owner) {
			ev.Dropped++
			continue
		}
		written[slot{owner, b.kind.Property}] = true
		if b.origin != nil && b.origin.owner == owner {
			kept[b.origin] = true
		}
		ev.Written++
	}

	if e.original != nil {
		for _, ob := range e.original.bindings {
			if kept[ob] || written[slot{ob.owner, ob.kind.Property}] {
				continue
			}
			if e.clear(ob) {
				ev.Cleared++
			}
		}
	}
	return ev
}

// clear removes a binding from the document: created owners leave their collection,
// selected owners get the expression and extras reset.
func (e *Editor) clear(b *Binding) bool {
	if b.owner == nil || !e.doc.Contains(b.owner) {
		return false
	}
	if b.kind.Owner == registry.OwnerCreated {
		return e.doc.Detach(b.owner)
	}
	b.owner.SetProp(b.kind.Property, "")
	for _, f := range b.kind.Extras {
		b.owner.SetProp(f.Name, "")
	}
	return true
}

func attach(doc *survey.Document, n survey.Node) bool {
	switch v := n.(type) {
	case *survey.Trigger:
		doc.AddTrigger(v)
	case *survey.HTMLCondition:
		doc.AddHTMLCondition(v)
	case *survey.CalculatedValue:
		doc.AddCalculatedValue(v)
	default:
		return false
	}
	return true
}

// RemoveItem deletes every binding of item from the document without staging.
func (e *Editor) RemoveItem(item *Item) error {
	if e.opts.ReadOnly {
		return ErrReadOnly
	}
	if e.mode != ModeView {
		return ErrNotViewing
	}
	if !e.known(item) {
		return ErrUnknownItem
	}

	ev := CommitEvent{Mode: ModeView, Expression: item.expression}
	func() {
		e.committing = true
		defer func() { e.committing = false }()
		for _, b := range item.bindings {
			if e.clear(b) {
				ev.Cleared++
			} else {
				ev.Dropped++
			}
		}
	}()

	e.Rescan()
	e.opts.Logger.Debug("logic item removed", "expression", item.expression, "cleared", ev.Cleared)
	if e.opts.Hooks.OnCommit != nil {
		e.opts.Hooks.OnCommit(&ev)
	}
	e.notifyModified()
	return nil
}
