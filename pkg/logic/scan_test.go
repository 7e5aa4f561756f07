package logic_test

import (
	"testing"

	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindingKinds(it *logic.Item) []string {
	var out []string
	for _, b := range it.Bindings() {
		out = append(out, b.Kind().Name)
	}
	return out
}

func expressions(items []*logic.Item) []string {
	var out []string
	for _, it := range items {
		out = append(out, it.Expression())
	}
	return out
}

func TestScan_NoConditions(t *testing.T) {
	doc, _ := textDoc(t, "q1", "q2")
	items, invisible := logic.Scan(doc, registry.NewDefault())
	assert.Empty(t, items)
	assert.Empty(t, invisible)
}

func TestScan_GroupsByExpression(t *testing.T) {
	doc, qs := textDoc(t, "q1", "q2", "q3", "q4")
	qs["q2"].VisibleIf = "{q1} = 1"
	qs["q3"].EnableIf = " {q1} = 1 "
	qs["q4"].RequiredIf = "{q1}=1"
	qs["q4"].VisibleIf = "{q1} = 1"
	doc.Pages[0].VisibleIf = "{q1} = 1"

	items, invisible := logic.Scan(doc, registry.NewDefault())
	require.Len(t, items, 2)
	assert.Empty(t, invisible)

	assert.Equal(t, []string{"{q1} = 1", "{q1}=1"}, expressions(items), "first occurrence order, no canonicalisation")
	assert.Equal(t, []string{
		registry.PageVisibility,
		registry.QuestionVisibility,
		registry.QuestionEnable,
		registry.QuestionVisibility,
	}, bindingKinds(items[0]))

	owners := []survey.Node{doc.Pages[0], qs["q2"], qs["q3"], qs["q4"]}
	for i, b := range items[0].Bindings() {
		assert.Same(t, owners[i], b.Owner())
		assert.Equal(t, "{q1} = 1", b.Expression())
	}
}

func TestScan_FullTreeOrder(t *testing.T) {
	doc := survey.NewDocument()
	page := doc.AddPage(survey.NewPage("page1"))
	panel := page.AddElement(survey.NewPanel("panel1")).(*survey.Panel)
	panel.VisibleIf = "{a} = 1"
	inner := panel.AddElement(survey.NewQuestion(survey.QuestionCheckbox, "inner")).(*survey.Question)
	inner.EnableIf = "{a} = 1"
	inner.ChoicesVisibleIf = "{item} <> 'x'"
	choice := inner.AddChoice(survey.NewChoice("x"))
	choice.VisibleIf = "{a} = 1"
	matrix := page.AddElement(survey.NewQuestion(survey.QuestionMatrixDynamic, "matrix")).(*survey.Question)
	col := matrix.AddColumn(survey.NewColumn("col1"))
	col.TotalExpression = "sum({row.col1})"
	v := matrix.AddValidator(survey.NewValidator(survey.ValidatorExpression))
	v.Expression = "{a} = 1"
	expr := page.AddElement(survey.NewQuestion(survey.QuestionExpression, "total")).(*survey.Question)
	expr.Expression = "{a} + 1"

	skip := doc.AddTrigger(survey.NewTrigger(survey.TriggerSkip))
	skip.Expression = "{a} = 1"
	skip.GotoName = "total"
	cv := doc.AddCalculatedValue(survey.NewCalculatedValue("var1"))
	cv.Expression = "{a} * 2"
	html := doc.AddHTMLCondition(survey.NewHTMLCondition())
	html.Expression = "{a} = 2"
	html.HTML = "<p>bye</p>"

	items, invisible := logic.Scan(doc, registry.NewDefault())

	require.Equal(t, []string{"{a} = 1", "{a} = 2"}, expressions(items))
	assert.Equal(t, []string{registry.PanelVisibility, registry.QuestionEnable, registry.TriggerSkip}, bindingKinds(items[0]))
	assert.Equal(t, []string{registry.CompletedHTMLOnCondition}, bindingKinds(items[1]))

	require.Equal(t, []string{"{item} <> 'x'", "{a} = 1", "sum({row.col1})", "{a} + 1", "{a} * 2"}, expressions(invisible))
	assert.Equal(t, []string{registry.QuestionChoicesVisibility}, bindingKinds(invisible[0]))
	assert.Equal(t, []string{registry.ChoiceVisibility, registry.QuestionExpressionValidator}, bindingKinds(invisible[1]))
	assert.Equal(t, []string{registry.ColumnTotal}, bindingKinds(invisible[2]))
	assert.Equal(t, []string{registry.QuestionExpression}, bindingKinds(invisible[3]))
	assert.Equal(t, []string{registry.CalculatedValue}, bindingKinds(invisible[4]))

	assert.Equal(t, "total", items[0].Bindings()[2].Extra(survey.PropGotoName))
	assert.Equal(t, "<p>bye</p>", items[1].Bindings()[0].Extra(survey.PropHTML))
}

func TestScan_VisibilityPartition(t *testing.T) {
	doc, qs := textDoc(t, "q1", "q2")
	qs["q2"].VisibleIf = "{q1} = 1"
	v := qs["q2"].AddValidator(survey.NewValidator(survey.ValidatorExpression))
	v.Expression = "{q1} = 1"

	items, invisible := logic.Scan(doc, registry.NewDefault())
	require.Len(t, items, 1)
	require.Len(t, invisible, 1)
	for _, b := range items[0].Bindings() {
		assert.True(t, b.Kind().ShowInUI)
	}
	for _, b := range invisible[0].Bindings() {
		assert.False(t, b.Kind().ShowInUI)
	}
}

func TestScan_Idempotent(t *testing.T) {
	doc, qs := textDoc(t, "q1", "q2", "q3")
	qs["q2"].VisibleIf = "{q1} = 1"
	qs["q3"].VisibleIf = "{q1} = 2"
	qs["q3"].EnableIf = "{q1} = 1"
	reg := registry.NewDefault()

	items1, inv1 := logic.Scan(doc, reg)
	items2, inv2 := logic.Scan(doc, reg)

	require.Equal(t, expressions(items1), expressions(items2))
	require.Equal(t, len(inv1), len(inv2))
	for i := range items1 {
		b1, b2 := items1[i].Bindings(), items2[i].Bindings()
		require.Len(t, b2, len(b1))
		for j := range b1 {
			assert.Equal(t, b1[j].Kind().Name, b2[j].Kind().Name)
			assert.Same(t, b1[j].Owner(), b2[j].Owner())
			assert.Equal(t, b1[j].Extras(), b2[j].Extras())
		}
	}
}

func TestScan_RegistrationOrderWithinNode(t *testing.T) {
	doc, qs := textDoc(t, "q1")
	qs["q1"].RequiredIf = "{x} = 1"
	qs["q1"].VisibleIf = "{x} = 1"

	reg := registry.New()
	defaults := registry.NewDefault()
	req, _ := defaults.ByName(registry.QuestionRequire)
	vis, _ := defaults.ByName(registry.QuestionVisibility)
	reg.Register(req)
	reg.Register(vis)

	items, _ := logic.Scan(doc, reg)
	assert.Equal(t, []string{registry.QuestionRequire, registry.QuestionVisibility}, bindingKinds(items[0]))

	reg.Unregister(registry.QuestionRequire)
	items, _ = logic.Scan(doc, reg)
	assert.Equal(t, []string{registry.QuestionVisibility}, bindingKinds(items[0]))
}
