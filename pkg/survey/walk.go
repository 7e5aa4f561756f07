package survey

// Walk visits the document in its fixed traversal order: every page followed by its
// elements depth-first (panels before their children), each question followed by its
// columns, choices and validators, and finally the triggers, calculated values and
// completed-html conditions. The document itself is not visited.
// Returning false from fn stops the walk.
func Walk(d *Document, fn func(Node) bool) {
	w := walker{fn: fn}
	for _, p := range d.Pages {
		if !w.visit(p) || !w.elements(p.Elements) {
			return
		}
	}
	for _, t := range d.Triggers {
		if !w.visit(t) {
			return
		}
	}
	for _, v := range d.CalculatedValues {
		if !w.visit(v) {
			return
		}
	}
	for _, c := range d.CompletedHTMLOnCondition {
		if !w.visit(c) {
			return
		}
	}
}

type walker struct {
	fn func(Node) bool
}

func (w walker) visit(n Node) bool {
	return w.fn(n)
}

func (w walker) elements(list []Element) bool {
	for _, e := range list {
		if !w.visit(e) {
			return false
		}
		switch v := e.(type) {
		case *Panel:
			if !w.elements(v.Elements) {
				return false
			}
		case *Question:
			if !w.question(v) {
				return false
			}
		}
	}
	return true
}

func (w walker) question(q *Question) bool {
	for _, c := range q.Columns {
		if !w.visit(c) {
			return false
		}
	}
	for _, c := range q.Choices {
		if !w.visit(c) {
			return false
		}
	}
	for _, v := range q.Validators {
		if !w.visit(v) {
			return false
		}
	}
	return true
}

// Nodes returns every node of d in traversal order.
func Nodes(d *Document) []Node {
	var out []Node
	Walk(d, func(n Node) bool {
		out = append(out, n)
		return true
	})
	return out
}
