package codec

import (
	"fmt"

	"github.com/aretw0/logica/pkg/survey"
)

// ToMap converts doc into its generic map form.
func ToMap(doc *survey.Document) map[string]any {
	m := props(doc, nil)
	if len(doc.Pages) > 0 {
		pages := make([]any, 0, len(doc.Pages))
		for _, p := range doc.Pages {
			pm := props(p, nil)
			if els := elements(p.Elements); len(els) > 0 {
				pm["elements"] = els
			}
			pages = append(pages, pm)
		}
		m["pages"] = pages
	}
	if len(doc.Triggers) > 0 {
		list := make([]any, 0, len(doc.Triggers))
		for _, t := range doc.Triggers {
			list = append(list, props(t, map[string]any{"type": t.TType}))
		}
		m["triggers"] = list
	}
	if len(doc.CalculatedValues) > 0 {
		list := make([]any, 0, len(doc.CalculatedValues))
		for _, v := range doc.CalculatedValues {
			list = append(list, props(v, nil))
		}
		m["calculatedValues"] = list
	}
	if len(doc.CompletedHTMLOnCondition) > 0 {
		list := make([]any, 0, len(doc.CompletedHTMLOnCondition))
		for _, c := range doc.CompletedHTMLOnCondition {
			list = append(list, props(c, nil))
		}
		m["completedHtmlOnCondition"] = list
	}
	return m
}

func elements(list []survey.Element) []any {
	out := make([]any, 0, len(list))
	for _, e := range list {
		switch v := e.(type) {
		case *survey.Panel:
			m := props(v, map[string]any{"type": "panel"})
			if els := elements(v.Elements); len(els) > 0 {
				m["elements"] = els
			}
			out = append(out, m)
		case *survey.Question:
			m := props(v, map[string]any{"type": v.QType})
			if len(v.Columns) > 0 {
				cols := make([]any, 0, len(v.Columns))
				for _, c := range v.Columns {
					cols = append(cols, bare(props(c, nil)))
				}
				m["columns"] = cols
			}
			if len(v.Choices) > 0 {
				choices := make([]any, 0, len(v.Choices))
				for _, c := range v.Choices {
					choices = append(choices, bare(props(c, nil)))
				}
				m["choices"] = choices
			}
			if len(v.Validators) > 0 {
				vals := make([]any, 0, len(v.Validators))
				for _, val := range v.Validators {
					vals = append(vals, props(val, map[string]any{"type": val.VType}))
				}
				m["validators"] = vals
			}
			out = append(out, m)
		}
	}
	return out
}

// props collects the extras and the non-empty declared properties of n on top
// of base. Declared values read from a non-string literal are written back as
// that literal while unchanged.
func props(n survey.Node, base map[string]any) map[string]any {
	m := base
	if m == nil {
		m = make(map[string]any)
	}
	for k, v := range n.Extras() {
		if _, ok := m[k]; !ok {
			m[k] = copyValue(v)
		}
	}
	for _, p := range n.Props() {
		v, _ := n.Prop(p)
		if v == "" {
			continue
		}
		if lit, ok := n.Literal(p); ok && fmt.Sprint(lit) == v {
			m[p] = lit
			continue
		}
		m[p] = v
	}
	return m
}

// bare turns {value: x} back into the short form x.
func bare(m map[string]any) any {
	if v, ok := m[survey.PropValue]; ok && len(m) == 1 {
		return v
	}
	return m
}

// copyValue deep copies the maps and slices of a decoded value.
func copyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = copyValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = copyValue(e)
		}
		return out
	}
	return v
}
