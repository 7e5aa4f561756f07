package dsl_test

import (
	"context"
	"testing"

	"github.com/aretw0/logica/pkg/dsl"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Document(t *testing.T) {
	b := dsl.New().Title("Feedback")

	page := b.Page("page1").VisibleIf("{q0} = 1")
	page.Question("q1", survey.QuestionRadiogroup).Title("Happy?").Choices("yes", "no")
	page.Question("q2", survey.QuestionComment).VisibleIf("{q1} = 'no'").Validate("{q2} notempty", "Tell us why")

	panel := page.Panel("details").EnableIf("{q1} notempty")
	m := panel.Question("m1", survey.QuestionMatrixDynamic)
	m.Column("c1").Set(survey.PropTotalExpression, "{row.c1} * 2")

	b.Trigger(survey.TriggerSetValue).When("{q1} = 'yes'").Set(survey.PropSetToName, "q2").Set(survey.PropSetValue, "great")
	b.CalculatedValue("score", "{q1} = 'yes'")
	b.CompletedHTML("{q1} = 'no'", "<p>sorry</p>")

	doc, err := b.Build()
	require.NoError(t, err)

	assert.Equal(t, "Feedback", doc.DocTitle)
	assert.Equal(t, "{q0} = 1", doc.Pages[0].VisibleIf)
	assert.Equal(t, "Happy?", doc.QuestionByName("q1").Title())
	assert.Len(t, doc.QuestionByName("q1").Choices, 2)
	assert.Equal(t, "{q2} notempty", doc.QuestionByName("q2").Validators[0].Expression)
	assert.Equal(t, "{q1} notempty", doc.PanelByName("details").EnableIf)
	assert.Equal(t, "{row.c1} * 2", doc.QuestionByName("m1").Columns[0].TotalExpression)
	require.Len(t, doc.Triggers, 1)
	assert.Equal(t, "q2", doc.Triggers[0].SetToName)
	assert.Equal(t, "great", doc.Triggers[0].SetValue)
	assert.Equal(t, "score", doc.CalculatedValues[0].Name())
	assert.Equal(t, "<p>sorry</p>", doc.CompletedHTMLOnCondition[0].HTML)
}

func TestBuilder_PageReuse(t *testing.T) {
	b := dsl.New()
	b.Page("p").Question("a", "")
	b.Page("p").Question("b", "")

	doc, err := b.Build()
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Len(t, doc.Pages[0].Elements, 2)
}

func TestBuilder_CollectsErrors(t *testing.T) {
	b := dsl.New()
	page := b.Page("page1")
	page.Question("q1", survey.QuestionText).Choices("a")
	page.Question("Q1", survey.QuestionText)
	page.Question("q3", survey.QuestionText).Column("c")
	b.Trigger(survey.TriggerComplete).Set(survey.PropGotoName, "q1")
	b.Trigger("")

	_, err := b.Build()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, `"q1" of type text has no choices`)
	assert.Contains(t, msg, `has no columns`)
	assert.Contains(t, msg, `has no property "gotoName"`)
	assert.Contains(t, msg, "trigger without type")
	assert.Contains(t, msg, `duplicate name "Q1"`)
}

func TestBuilder_BuildStore(t *testing.T) {
	b := dsl.New()
	b.Page("page1").Question("q1", survey.QuestionText)

	store, err := b.BuildStore("doc")
	require.NoError(t, err)

	doc, err := store.Load(context.Background(), "doc")
	require.NoError(t, err)
	assert.NotNil(t, doc.QuestionByName("q1"))
}
