package survey

import "strings"

// Document is the root of a survey definition.
type Document struct {
	base
	DocTitle string

	Pages                    []*Page
	Triggers                 []*Trigger
	CalculatedValues         []*CalculatedValue
	CompletedHTMLOnCondition []*HTMLCondition

	observers observers
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{base: newBase()}
}

func (d *Document) Kind() Kind      { return KindDocument }
func (d *Document) Type() string    { return "" }
func (d *Document) Name() string    { return "" }
func (d *Document) Title() string   { return d.DocTitle }
func (d *Document) Props() []string { return fieldNames(d.fields()) }

func (d *Document) Prop(name string) (string, bool) { return getField(d.fields(), name) }

func (d *Document) SetProp(name, value string) bool { return setField(d.fields(), name, value) }

func (d *Document) fields() []field {
	return []field{{PropTitle, &d.DocTitle}}
}

// Subscribe registers fn for structural change events and returns a function removing it.
func (d *Document) Subscribe(fn func(Event)) (unsubscribe func()) {
	return d.observers.add(fn)
}

func (d *Document) emit(e Event) {
	d.observers.emit(e)
}

// notify delivers e to the document owning n, if any.
func notify(n Node, e Event) {
	if d := Root(n); d != nil {
		d.emit(e)
	}
}

// AddPage appends p to the document.
func (d *Document) AddPage(p *Page) *Page {
	p.parent = d
	d.Pages = append(d.Pages, p)
	d.emit(Event{Type: EventPageAdded, Node: p})
	return p
}

// RemovePage detaches p. It reports whether p was part of the document.
func (d *Document) RemovePage(p *Page) bool {
	for i, cur := range d.Pages {
		if cur == p {
			d.Pages = append(d.Pages[:i:i], d.Pages[i+1:]...)
			d.emit(Event{Type: EventPageRemoved, Node: p})
			p.parent = nil
			return true
		}
	}
	return false
}

// AddTrigger appends t to the triggers collection.
func (d *Document) AddTrigger(t *Trigger) *Trigger {
	t.parent = d
	d.Triggers = append(d.Triggers, t)
	d.emit(Event{Type: EventCollectionAdded, Node: t})
	return t
}

// RemoveTrigger detaches t from the triggers collection.
func (d *Document) RemoveTrigger(t *Trigger) bool {
	for i, cur := range d.Triggers {
		if cur == t {
			d.Triggers = append(d.Triggers[:i:i], d.Triggers[i+1:]...)
			d.emit(Event{Type: EventCollectionRemoved, Node: t})
			t.parent = nil
			return true
		}
	}
	return false
}

// AddCalculatedValue appends v to the calculated values collection.
func (d *Document) AddCalculatedValue(v *CalculatedValue) *CalculatedValue {
	v.parent = d
	d.CalculatedValues = append(d.CalculatedValues, v)
	d.emit(Event{Type: EventCollectionAdded, Node: v})
	return v
}

// RemoveCalculatedValue detaches v.
func (d *Document) RemoveCalculatedValue(v *CalculatedValue) bool {
	for i, cur := range d.CalculatedValues {
		if cur == v {
			d.CalculatedValues = append(d.CalculatedValues[:i:i], d.CalculatedValues[i+1:]...)
			d.emit(Event{Type: EventCollectionRemoved, Node: v})
			v.parent = nil
			return true
		}
	}
	return false
}

// AddHTMLCondition appends c to the completedHtmlOnCondition collection.
func (d *Document) AddHTMLCondition(c *HTMLCondition) *HTMLCondition {
	c.parent = d
	d.CompletedHTMLOnCondition = append(d.CompletedHTMLOnCondition, c)
	d.emit(Event{Type: EventCollectionAdded, Node: c})
	return c
}

// RemoveHTMLCondition detaches c.
func (d *Document) RemoveHTMLCondition(c *HTMLCondition) bool {
	for i, cur := range d.CompletedHTMLOnCondition {
		if cur == c {
			d.CompletedHTMLOnCondition = append(d.CompletedHTMLOnCondition[:i:i], d.CompletedHTMLOnCondition[i+1:]...)
			d.emit(Event{Type: EventCollectionRemoved, Node: c})
			c.parent = nil
			return true
		}
	}
	return false
}

// Detach removes n from whichever list of the document holds it.
func (d *Document) Detach(n Node) bool {
	switch v := n.(type) {
	case *Page:
		return d.RemovePage(v)
	case *Trigger:
		return d.RemoveTrigger(v)
	case *CalculatedValue:
		return d.RemoveCalculatedValue(v)
	case *HTMLCondition:
		return d.RemoveHTMLCondition(v)
	case Element:
		if c, ok := v.Parent().(Container); ok {
			return c.RemoveElement(v)
		}
	}
	return false
}

// Contains reports whether n is currently attached to d.
func (d *Document) Contains(n Node) bool {
	if n == nil {
		return false
	}
	return Root(n) == d
}

// Rename changes the name of n and announces it to subscribers.
// Renaming is a pure property write; reference propagation is up to the subscribers.
func (d *Document) Rename(n Node, newName string) bool {
	old := n.Name()
	if old == newName {
		return false
	}
	if !n.SetProp(PropName, newName) {
		return false
	}
	if d.Contains(n) {
		d.emit(Event{Type: EventRenamed, Node: n, OldName: old, NewName: newName})
	}
	return true
}

// AllQuestions returns the questions of the document in traversal order.
func (d *Document) AllQuestions() []*Question {
	var out []*Question
	Walk(d, func(n Node) bool {
		if q, ok := n.(*Question); ok {
			out = append(out, q)
		}
		return true
	})
	return out
}

// AllPanels returns the panels of the document in traversal order.
func (d *Document) AllPanels() []*Panel {
	var out []*Panel
	Walk(d, func(n Node) bool {
		if p, ok := n.(*Panel); ok {
			out = append(out, p)
		}
		return true
	})
	return out
}

// QuestionByName looks a question up by name, ignoring case.
func (d *Document) QuestionByName(name string) *Question {
	for _, q := range d.AllQuestions() {
		if strings.EqualFold(q.NodeName, name) {
			return q
		}
	}
	return nil
}

// PanelByName looks a panel up by name, ignoring case.
func (d *Document) PanelByName(name string) *Panel {
	for _, p := range d.AllPanels() {
		if strings.EqualFold(p.NodeName, name) {
			return p
		}
	}
	return nil
}

// PageByName looks a page up by name, ignoring case.
func (d *Document) PageByName(name string) *Page {
	for _, p := range d.Pages {
		if strings.EqualFold(p.NodeName, name) {
			return p
		}
	}
	return nil
}

// VariableNames returns every name an expression may reference: question names
// followed by calculated value names.
func (d *Document) VariableNames() []string {
	var names []string
	for _, q := range d.AllQuestions() {
		if q.NodeName != "" {
			names = append(names, q.NodeName)
		}
	}
	for _, v := range d.CalculatedValues {
		if v.NodeName != "" {
			names = append(names, v.NodeName)
		}
	}
	return names
}
