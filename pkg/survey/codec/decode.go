package codec

import (
	"fmt"
	"reflect"

	"github.com/aretw0/logica/pkg/survey"
	"github.com/mitchellh/mapstructure"
)

type nodeDTO struct {
	Type  string         `mapstructure:"type"`
	Name  string         `mapstructure:"name"`
	Props map[string]any `mapstructure:",remain"`
}

type elementDTO struct {
	Type       string         `mapstructure:"type"`
	Name       string         `mapstructure:"name"`
	Elements   []elementDTO   `mapstructure:"elements"`
	Columns    []nodeDTO      `mapstructure:"columns"`
	Choices    []nodeDTO      `mapstructure:"choices"`
	Validators []nodeDTO      `mapstructure:"validators"`
	Props      map[string]any `mapstructure:",remain"`
}

type pageDTO struct {
	Name     string         `mapstructure:"name"`
	Elements []elementDTO   `mapstructure:"elements"`
	Props    map[string]any `mapstructure:",remain"`
}

type documentDTO struct {
	Pages                    []pageDTO      `mapstructure:"pages"`
	Elements                 []elementDTO   `mapstructure:"elements"`
	Triggers                 []nodeDTO      `mapstructure:"triggers"`
	CalculatedValues         []nodeDTO      `mapstructure:"calculatedValues"`
	CompletedHTMLOnCondition []nodeDTO      `mapstructure:"completedHtmlOnCondition"`
	Props                    map[string]any `mapstructure:",remain"`
}

// rest returns the remaining properties of d with the type and name keys put
// back, for node kinds that do not consume them.
func (d nodeDTO) rest(withType, withName bool) map[string]any {
	m := make(map[string]any, len(d.Props)+2)
	for k, v := range d.Props {
		m[k] = v
	}
	if withType && d.Type != "" {
		m["type"] = d.Type
	}
	if withName && d.Name != "" {
		m["name"] = d.Name
	}
	return m
}

// scalarToNode lets choices be written as bare values: "a" means {value: "a"}.
// The scalar keeps its type so numeric choices are written back as numbers.
func scalarToNode(from, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(nodeDTO{}) {
		return data, nil
	}
	if isScalar(data) {
		return map[string]any{survey.PropValue: data}, nil
	}
	return data, nil
}

func isScalar(v any) bool {
	switch reflect.ValueOf(v).Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

// FromMap builds a document from its generic map form.
func FromMap(raw map[string]any) (*survey.Document, error) {
	var dto documentDTO
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       scalarToNode,
		WeaklyTypedInput: true,
		Result:           &dto,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("decode survey: %w", err)
	}

	doc := survey.NewDocument()
	applyProps(doc, dto.Props)

	pages := dto.Pages
	if len(pages) == 0 && len(dto.Elements) > 0 {
		pages = []pageDTO{{Name: "page1", Elements: dto.Elements}}
	}
	for _, p := range pages {
		page := survey.NewPage(p.Name)
		applyProps(page, p.Props)
		doc.AddPage(page)
		if err := addElements(page, p.Elements); err != nil {
			return nil, err
		}
	}
	for _, t := range dto.Triggers {
		if t.Type == "" {
			return nil, fmt.Errorf("trigger without type")
		}
		trigger := survey.NewTrigger(t.Type)
		applyProps(trigger, t.rest(false, true))
		doc.AddTrigger(trigger)
	}
	for _, v := range dto.CalculatedValues {
		cv := survey.NewCalculatedValue(v.Name)
		applyProps(cv, v.rest(true, false))
		doc.AddCalculatedValue(cv)
	}
	for _, c := range dto.CompletedHTMLOnCondition {
		cond := survey.NewHTMLCondition()
		applyProps(cond, c.rest(true, true))
		doc.AddHTMLCondition(cond)
	}
	return doc, nil
}

func addElements(parent survey.Container, list []elementDTO) error {
	for _, e := range list {
		if e.Type == "panel" {
			panel := survey.NewPanel(e.Name)
			applyProps(panel, e.Props)
			parent.AddElement(panel)
			if err := addElements(panel, e.Elements); err != nil {
				return err
			}
			continue
		}
		if e.Name == "" {
			return fmt.Errorf("%s question without name", e.Type)
		}
		q := survey.NewQuestion(e.Type, e.Name)
		applyProps(q, e.Props)
		parent.AddElement(q)
		for _, c := range e.Columns {
			col := survey.NewColumn(c.Name)
			applyProps(col, c.rest(true, false))
			q.AddColumn(col)
		}
		for _, c := range e.Choices {
			choice := survey.NewChoice("")
			applyProps(choice, c.rest(true, true))
			q.AddChoice(choice)
		}
		for _, v := range e.Validators {
			val := survey.NewValidator(v.Type)
			applyProps(val, v.rest(false, true))
			q.AddValidator(val)
		}
	}
	return nil
}

// applyProps copies the declared scalar properties of n from props and keeps
// everything else as extras.
func applyProps(n survey.Node, props map[string]any) {
	declared := make(map[string]bool)
	for _, p := range n.Props() {
		declared[p] = true
	}
	extras := make(map[string]any)
	for k, v := range props {
		if v == nil {
			continue
		}
		if !declared[k] || !isScalar(v) {
			extras[k] = v
			continue
		}
		if str, ok := v.(string); ok {
			n.SetProp(k, str)
			continue
		}
		n.SetProp(k, fmt.Sprint(v))
		n.SetLiteral(k, v)
	}
	n.SetExtras(extras)
}
