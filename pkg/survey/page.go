package survey

// Element is a node that can live inside a page or a panel.
type Element interface {
	Node
	element()
}

// Container is implemented by nodes holding elements.
type Container interface {
	Node
	ElementList() []Element
	AddElement(e Element) Element
	InsertElement(index int, e Element) Element
	RemoveElement(e Element) bool
}

// conditions holds the visibleIf/enableIf/requiredIf trio.
type conditions struct {
	VisibleIf  string
	EnableIf   string
	RequiredIf string
}

func (c *conditions) conditionFields() []field {
	return []field{
		{PropVisibleIf, &c.VisibleIf},
		{PropEnableIf, &c.EnableIf},
		{PropRequiredIf, &c.RequiredIf},
	}
}

// elements is the element list shared by pages and panels.
type elements struct {
	Elements []Element
}

func (l *elements) insert(owner Node, index int, e Element) Element {
	setParent(e, owner)
	if index < 0 || index > len(l.Elements) {
		index = len(l.Elements)
	}
	l.Elements = append(l.Elements, nil)
	copy(l.Elements[index+1:], l.Elements[index:])
	l.Elements[index] = e
	notify(owner, Event{Type: EventElementAdded, Node: e})
	return e
}

func (l *elements) remove(owner Node, e Element) bool {
	for i, cur := range l.Elements {
		if cur == e {
			l.Elements = append(l.Elements[:i:i], l.Elements[i+1:]...)
			notify(owner, Event{Type: EventElementRemoved, Node: e})
			setParent(e, nil)
			return true
		}
	}
	return false
}

func setParent(e Element, parent Node) {
	switch v := e.(type) {
	case *Panel:
		v.parent = parent
	case *Question:
		v.parent = parent
	}
}

// Page is a top-level container.
type Page struct {
	base
	named
	conditions
	elements
}

// NewPage creates a detached page.
func NewPage(name string) *Page {
	return &Page{base: newBase(), named: named{NodeName: name}}
}

func (p *Page) Kind() Kind      { return KindPage }
func (p *Page) Type() string    { return "page" }
func (p *Page) Props() []string { return fieldNames(p.fields()) }

func (p *Page) Prop(name string) (string, bool) { return getField(p.fields(), name) }

func (p *Page) SetProp(name, value string) bool { return setField(p.fields(), name, value) }

func (p *Page) fields() []field {
	return append([]field{{PropName, &p.NodeName}, {PropTitle, &p.NodeTitle}}, p.conditionFields()...)
}

func (p *Page) ElementList() []Element { return p.Elements }

func (p *Page) AddElement(e Element) Element { return p.insert(p, -1, e) }

func (p *Page) InsertElement(index int, e Element) Element { return p.insert(p, index, e) }

func (p *Page) RemoveElement(e Element) bool { return p.remove(p, e) }

// Panel groups elements inside a page or another panel.
type Panel struct {
	base
	named
	conditions
	elements
}

// NewPanel creates a detached panel.
func NewPanel(name string) *Panel {
	return &Panel{base: newBase(), named: named{NodeName: name}}
}

func (p *Panel) element()        {}
func (p *Panel) Kind() Kind      { return KindPanel }
func (p *Panel) Type() string    { return "panel" }
func (p *Panel) Props() []string { return fieldNames(p.fields()) }

func (p *Panel) Prop(name string) (string, bool) { return getField(p.fields(), name) }

func (p *Panel) SetProp(name, value string) bool { return setField(p.fields(), name, value) }

func (p *Panel) fields() []field {
	return append([]field{{PropName, &p.NodeName}, {PropTitle, &p.NodeTitle}}, p.conditionFields()...)
}

func (p *Panel) ElementList() []Element { return p.Elements }

func (p *Panel) AddElement(e Element) Element { return p.insert(p, -1, e) }

func (p *Panel) InsertElement(index int, e Element) Element { return p.insert(p, index, e) }

func (p *Panel) RemoveElement(e Element) bool { return p.remove(p, e) }
