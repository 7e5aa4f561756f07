package registry

import (
	"fmt"
	"strings"

	"github.com/aretw0/logica/pkg/schema"
	"github.com/aretw0/logica/pkg/survey"
)

// Spec declares a custom selected-owner kind in configuration.
//
//	kinds:
//	  - name: question_readonly
//	    displayName: Make question read-only
//	    owner: question
//	    property: enableIf
//	    text: "Make question {owner} read-only"
//	    extras:
//	      title: string
type Spec struct {
	Name        string        `yaml:"name" json:"name"`
	DisplayName string        `yaml:"displayName" json:"displayName"`
	Owner       string        `yaml:"owner" json:"owner"`
	Type        string        `yaml:"type,omitempty" json:"type,omitempty"`
	Property    string        `yaml:"property" json:"property"`
	Hidden      bool          `yaml:"hidden,omitempty" json:"hidden,omitempty"`
	Text        string        `yaml:"text,omitempty" json:"text,omitempty"`
	Extras      schema.Schema `yaml:"extras,omitempty" json:"extras,omitempty"`
}

var specOwners = map[string]survey.Kind{
	"page":     survey.KindPage,
	"panel":    survey.KindPanel,
	"question": survey.KindQuestion,
	"column":   survey.KindColumn,
	"choice":   survey.KindChoice,
}

// Kind converts the declaration into a registrable kind.
func (s Spec) Kind() (Kind, error) {
	if strings.TrimSpace(s.Name) == "" {
		return Kind{}, fmt.Errorf("kind: name is required")
	}
	if strings.TrimSpace(s.Property) == "" {
		return Kind{}, fmt.Errorf("kind %s: property is required", s.Name)
	}
	owner, ok := specOwners[s.Owner]
	if !ok {
		return Kind{}, fmt.Errorf("kind %s: unsupported owner %q", s.Name, s.Owner)
	}

	k := Kind{
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Property:    s.Property,
		OwnerKind:   owner,
		ShowInUI:    !s.Hidden,
		Owner:       OwnerSelected,
	}
	if s.Type != "" {
		typ := s.Type
		k.Match = func(n survey.Node) bool { return n.Type() == typ }
	}
	if s.Text != "" {
		text := s.Text
		k.Text = func(c RenderContext) string {
			if c.Owner == nil && strings.Contains(text, "{owner}") {
				return ""
			}
			return strings.ReplaceAll(text, "{owner}", "{"+c.OwnerLabel()+"}")
		}
	}
	for _, name := range s.Extras.Keys() {
		k.Extras = append(k.Extras, ExtraField{Name: name, Type: s.Extras[name]})
	}
	return k, nil
}

// RegisterSpecs converts and registers every declaration, stopping at the first error.
func (r *Registry) RegisterSpecs(specs []Spec) error {
	for _, s := range specs {
		k, err := s.Kind()
		if err != nil {
			return err
		}
		r.Register(k)
	}
	return nil
}
