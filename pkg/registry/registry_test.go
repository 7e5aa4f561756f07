package registry_test

import (
	"testing"

	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/schema"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func names(kinds []registry.Kind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = k.Name
	}
	return out
}

func TestRegistry_OrderAndOverwrite(t *testing.T) {
	r := registry.New()
	r.Register(registry.Kind{Name: "a", Property: "visibleIf"})
	r.Register(registry.Kind{Name: "b", Property: "enableIf"})
	r.Register(registry.Kind{Name: "c", Property: "visibleIf"})

	r.Register(registry.Kind{Name: "a", Property: "requiredIf"})

	assert.Equal(t, []string{"a", "b", "c"}, names(r.All()), "overwrite keeps the original slot")
	k, ok := r.ByName("a")
	require.True(t, ok)
	assert.Equal(t, "requiredIf", k.Property, "last registration wins")
	assert.Equal(t, []string{"requiredIf", "enableIf", "visibleIf"}, r.Properties())

	assert.True(t, r.Unregister("b"))
	assert.False(t, r.Unregister("b"))
	assert.Equal(t, []string{"a", "c"}, names(r.All()))
	k, ok = r.ByName("c")
	require.True(t, ok)
	assert.Equal(t, "c", k.Name)

	_, ok = r.ByName("missing")
	assert.False(t, ok)
}

func TestRegistry_AllIsSnapshot(t *testing.T) {
	r := registry.NewDefault()
	all := r.All()
	all[0].Name = "changed"
	k, ok := r.ByName(registry.PageVisibility)
	require.True(t, ok)
	assert.Equal(t, registry.PageVisibility, k.Name)
}

func TestBuiltins_Matching(t *testing.T) {
	r := registry.NewDefault()
	q := survey.NewQuestion(survey.QuestionText, "q1")
	expr := survey.NewQuestion(survey.QuestionExpression, "total")
	validator := survey.NewValidator(survey.ValidatorExpression)
	other := survey.NewValidator("numeric")
	complete := survey.NewTrigger(survey.TriggerComplete)
	skip := survey.NewTrigger(survey.TriggerSkip)

	tests := []struct {
		kind string
		node survey.Node
		want bool
	}{
		{registry.QuestionVisibility, q, true},
		{registry.QuestionVisibility, survey.NewPanel("p"), false},
		{registry.PanelEnable, survey.NewPanel("p"), true},
		{registry.QuestionExpression, expr, true},
		{registry.QuestionExpression, q, false},
		{registry.QuestionExpressionValidator, validator, true},
		{registry.QuestionExpressionValidator, other, false},
		{registry.TriggerComplete, complete, true},
		{registry.TriggerComplete, skip, false},
		{registry.TriggerSkip, skip, true},
		{registry.QuestionChoicesVisibility, q, false},
		{registry.QuestionChoicesVisibility, survey.NewQuestion(survey.QuestionCheckbox, "c"), true},
		{registry.QuestionColumnsVisibility, survey.NewQuestion(survey.QuestionMatrix, "m"), true},
		{registry.QuestionColumnsVisibility, survey.NewQuestion(survey.QuestionMatrixDynamic, "m"), false},
		{registry.QuestionRequire, nil, false},
	}
	for _, tt := range tests {
		k, ok := r.ByName(tt.kind)
		require.True(t, ok, tt.kind)
		assert.Equal(t, tt.want, k.Matches(tt.node), "%s on %v", tt.kind, tt.node)
	}
}

func TestBuiltins_Availability(t *testing.T) {
	r := registry.NewDefault()
	doc := survey.NewDocument()
	p1 := doc.AddPage(survey.NewPage("page1"))
	p1.AddElement(survey.NewQuestion(survey.QuestionText, "q1"))

	page, _ := r.ByName(registry.PageVisibility)
	panel, _ := r.ByName(registry.PanelVisibility)
	question, _ := r.ByName(registry.QuestionVisibility)
	validator, _ := r.ByName(registry.QuestionExpressionValidator)

	assert.False(t, page.IsAvailable(doc), "one page is not enough")
	assert.False(t, panel.IsAvailable(doc))
	assert.True(t, question.IsAvailable(doc))
	assert.False(t, validator.IsAvailable(doc), "hidden kinds are never offered")

	doc.AddPage(survey.NewPage("page2"))
	p1.AddElement(survey.NewPanel("panel1"))
	assert.True(t, page.IsAvailable(doc))
	assert.True(t, panel.IsAvailable(doc))
}

func TestBuiltins_Render(t *testing.T) {
	r := registry.NewDefault()
	q := survey.NewQuestion(survey.QuestionText, "q2")

	render := func(kind string, owner survey.Node, extras map[string]string) string {
		k, ok := r.ByName(kind)
		require.True(t, ok)
		return k.Render(registry.RenderContext{Owner: owner, Extras: extras})
	}

	assert.Equal(t, "Make question {q2} visible", render(registry.QuestionVisibility, q, nil))
	assert.Equal(t, "Make page {page1} visible", render(registry.PageVisibility, survey.NewPage("page1"), nil))
	assert.Equal(t, "Survey becomes completed", render(registry.TriggerComplete, nil, nil))
	assert.Equal(t, "Set into question: {q2} value q2Value",
		render(registry.TriggerSetValue, nil, map[string]string{"setToName": "q2", "setValue": "q2Value"}))
	assert.Equal(t, "Copy into question: {q1} value from question {q2}",
		render(registry.TriggerCopyValue, nil, map[string]string{"setToName": "q1", "fromName": "q2"}))
	assert.Equal(t, "Survey skip to the question {q2}",
		render(registry.TriggerSkip, nil, map[string]string{"gotoName": "q2"}))
	assert.Equal(t, "Run expression: '{q2} + 1' and set it's result into question: {q3}",
		render(registry.TriggerRunExpression, nil, map[string]string{"runExpression": "{q2} + 1", "setToName": "q3"}))
	assert.Equal(t, "Show custom text for the 'Thank you page'.", render(registry.CompletedHTMLOnCondition, nil, nil))

	t.Run("fallback", func(t *testing.T) {
		assert.Equal(t, "visibleIf condition", render(registry.QuestionVisibility, nil, nil))
		assert.Equal(t, "expression condition", render(registry.TriggerSkip, nil, map[string]string{}))
		assert.Equal(t, "enableIf condition", registry.Kind{Property: "enableIf"}.Render(registry.RenderContext{}))
	})

	t.Run("titles", func(t *testing.T) {
		q.NodeTitle = "Question 2"
		assert.Equal(t, "Make question {Question 2} visible", render(registry.QuestionVisibility, q, nil))
	})
}

func TestKind_Schema(t *testing.T) {
	doc := survey.NewDocument()
	doc.AddPage(survey.NewPage("page1")).AddElement(survey.NewQuestion(survey.QuestionText, "q1"))
	r := registry.NewDefault()
	k, _ := r.ByName(registry.TriggerCopyValue)

	s := k.Schema(doc)
	require.NoError(t, schema.Validate(s, schema.Strings(map[string]string{"setToName": "q1", "fromName": "Q1"})))

	err := schema.Validate(s, schema.Strings(map[string]string{"setToName": "", "fromName": "q9"}))
	require.Error(t, err)
	assert.Equal(t, []string{"fromName", "setToName"}, schema.FailedKeys(err))

	run, _ := r.ByName(registry.TriggerRunExpression)
	f, ok := run.Extra("setToName")
	require.True(t, ok)
	assert.False(t, f.Required())
	assert.NoError(t, schema.Validate(run.Schema(doc), schema.Strings(map[string]string{"runExpression": "1", "setToName": ""})))
}

func TestSpec_YAML(t *testing.T) {
	src := `
kinds:
  - name: question_readonly
    displayName: Make question read-only
    owner: question
    type: text
    property: enableIf
    text: "Make question {owner} read-only"
    extras:
      title: nonempty
`
	var cfg struct {
		Kinds []registry.Spec `yaml:"kinds"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(src), &cfg))

	r := registry.NewDefault()
	require.NoError(t, r.RegisterSpecs(cfg.Kinds))

	k, ok := r.ByName("question_readonly")
	require.True(t, ok)
	assert.True(t, k.ShowInUI)
	assert.True(t, k.Matches(survey.NewQuestion(survey.QuestionText, "q1")))
	assert.False(t, k.Matches(survey.NewQuestion(survey.QuestionComment, "q1")))
	assert.Equal(t, "Make question {q1} read-only",
		k.Render(registry.RenderContext{Owner: survey.NewQuestion(survey.QuestionText, "q1")}))
	require.Len(t, k.Extras, 1)
	assert.True(t, k.Extras[0].Required())

	_, err := registry.Spec{Name: "x", Owner: "trigger", Property: "expression"}.Kind()
	assert.Error(t, err)
}
