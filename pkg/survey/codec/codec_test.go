package codec_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/logica/pkg/survey"
	"github.com/aretw0/logica/pkg/survey/codec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `{
  "title": "Feedback",
  "pages": [
    {
      "name": "page1",
      "visibleIf": "{q0} = 1",
      "elements": [
        {"type": "text", "name": "q1", "visibleIf": "{q0} > 2", "minValueExpression": "today()"},
        {"type": "panel", "name": "panel1", "enableIf": "{q1} notempty", "elements": [
          {"type": "checkbox", "name": "q2", "choices": ["a", 2, {"value": "c", "visibleIf": "{q1} = 'x'"}]},
          {"type": "matrixdynamic", "name": "m1", "columns": [{"name": "col1", "totalExpression": "{row.col1} * 2"}]}
        ]},
        {"type": "comment", "name": "q3", "validators": [{"type": "expression", "expression": "{q3} notempty", "text": "fill it"}]}
      ]
    }
  ],
  "triggers": [{"type": "copyvalue", "expression": "{q1} = 1", "setToName": "q3", "fromName": "q1"}],
  "calculatedValues": [{"name": "total", "expression": "{q1} + 1"}],
  "completedHtmlOnCondition": [{"expression": "{q1} = 2", "html": "<p>bye</p>"}],
  "unknown": true
}`

func TestDecode_JSON(t *testing.T) {
	doc, err := codec.Decode([]byte(sample), codec.JSON)
	require.NoError(t, err)

	assert.Equal(t, "Feedback", doc.DocTitle)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "{q0} = 1", doc.Pages[0].VisibleIf)

	q1 := doc.QuestionByName("q1")
	require.NotNil(t, q1)
	assert.Equal(t, "{q0} > 2", q1.VisibleIf)
	assert.Equal(t, "today()", q1.MinValueExpression)

	panel := doc.PanelByName("panel1")
	require.NotNil(t, panel)
	assert.Equal(t, "{q1} notempty", panel.EnableIf)
	assert.Same(t, panel, doc.QuestionByName("q2").Parent())

	q2 := doc.QuestionByName("q2")
	require.Len(t, q2.Choices, 3)
	assert.Equal(t, "a", q2.Choices[0].Value)
	assert.Equal(t, "2", q2.Choices[1].Value)
	assert.Equal(t, "{q1} = 'x'", q2.Choices[2].VisibleIf)

	m1 := doc.QuestionByName("m1")
	require.Len(t, m1.Columns, 1)
	assert.Equal(t, "{row.col1} * 2", m1.Columns[0].TotalExpression)

	q3 := doc.QuestionByName("q3")
	require.Len(t, q3.Validators, 1)
	assert.Equal(t, "{q3} notempty", q3.Validators[0].Expression)

	require.Len(t, doc.Triggers, 1)
	assert.Equal(t, survey.TriggerCopyValue, doc.Triggers[0].TType)
	assert.Equal(t, "q1", doc.Triggers[0].FromName)
	require.Len(t, doc.CalculatedValues, 1)
	assert.Equal(t, "total", doc.CalculatedValues[0].Name())
	require.Len(t, doc.CompletedHTMLOnCondition, 1)
	assert.Equal(t, "<p>bye</p>", doc.CompletedHTMLOnCondition[0].HTML)
}

func TestDecode_TopLevelElements(t *testing.T) {
	doc, err := codec.Decode([]byte(`elements:
  - type: text
    name: q1
    visibleIf: "{q2} = 1"
  - type: text
    name: q2
`), codec.YAML)
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)
	assert.Equal(t, "page1", doc.Pages[0].Name())
	assert.Equal(t, "{q2} = 1", doc.QuestionByName("q1").VisibleIf)
}

func TestDecode_Errors(t *testing.T) {
	_, err := codec.Decode([]byte(`{`), codec.JSON)
	assert.Error(t, err)

	_, err = codec.Decode([]byte(`{"triggers": [{"expression": "{a} = 1"}]}`), codec.JSON)
	assert.Error(t, err)

	_, err = codec.Decode([]byte(`{"elements": [{"type": "text"}]}`), codec.JSON)
	assert.Error(t, err)
}

func TestRoundTrip(t *testing.T) {
	doc, err := codec.Decode([]byte(sample), codec.JSON)
	require.NoError(t, err)

	for _, format := range []codec.Format{codec.JSON, codec.YAML} {
		t.Run(string(format), func(t *testing.T) {
			data, err := codec.Encode(doc, format)
			require.NoError(t, err)

			again, err := codec.Decode(data, format)
			require.NoError(t, err)
			assert.JSONEq(t, toJSON(t, doc), toJSON(t, again))
		})
	}
}

func toJSON(t *testing.T, doc *survey.Document) string {
	t.Helper()
	data, err := json.Marshal(codec.ToMap(doc))
	require.NoError(t, err)
	return string(data)
}

const passThrough = `{
  "showProgressBar": "top",
  "pages": [{
    "name": "page1",
    "navigationTitle": "Start",
    "elements": [
      {"type": "text", "name": "q1", "isRequired": true, "inputType": "number"},
      {"type": "radiogroup", "name": "q2", "colCount": 3, "visibleIf": "{q1} = 1",
       "choices": [1, 2, {"value": 3, "text": {"default": "Three", "de": "Drei"}}]},
      {"type": "html", "name": "info", "html": "<b>hi</b>"},
      {"type": "matrix", "name": "m", "columns": ["Col 1", "Col 2"], "rows": [{"value": "r1"}]}
    ]
  }],
  "triggers": [{"type": "setvalue", "expression": "{q1} = 1", "setToName": "q2", "setValue": 2}]
}`

func TestDecode_KeepsUnmanagedProperties(t *testing.T) {
	doc, err := codec.Decode([]byte(passThrough), codec.JSON)
	require.NoError(t, err)

	q1 := doc.QuestionByName("q1")
	assert.Equal(t, true, q1.Extras()["isRequired"])
	assert.Equal(t, "number", q1.Extras()["inputType"])

	q2 := doc.QuestionByName("q2")
	assert.Equal(t, "{q1} = 1", q2.VisibleIf)
	require.Len(t, q2.Choices, 3)
	assert.Equal(t, "1", q2.Choices[0].Value)
	lit, ok := q2.Choices[0].Literal(survey.PropValue)
	assert.True(t, ok)
	assert.Equal(t, float64(1), lit)
	assert.Empty(t, q2.Choices[2].Text, "localized texts stay untouched")

	t.Run("Written Back Unchanged", func(t *testing.T) {
		for _, format := range []codec.Format{codec.JSON, codec.YAML} {
			data, err := codec.Encode(doc, format)
			require.NoError(t, err)
			again, err := codec.Decode(data, format)
			require.NoError(t, err)
			assert.JSONEq(t, passThrough, toJSON(t, again), string(format))
		}
	})

	t.Run("Edited Literal Becomes A String", func(t *testing.T) {
		cp, err := codec.Clone(doc)
		require.NoError(t, err)
		cp.QuestionByName("q2").Choices[0].Value = "one"
		cp.Triggers[0].SetValue = "{q1}"

		m := codec.ToMap(cp)
		page := m["pages"].([]any)[0].(map[string]any)
		q2 := page["elements"].([]any)[1].(map[string]any)
		assert.Equal(t, []any{"one", float64(2), map[string]any{"value": float64(3), "text": map[string]any{"default": "Three", "de": "Drei"}}}, q2["choices"])
		trigger := m["triggers"].([]any)[0].(map[string]any)
		assert.Equal(t, "{q1}", trigger["setValue"])
	})
}

func TestClone_IsIndependent(t *testing.T) {
	doc, err := codec.Decode([]byte(sample), codec.JSON)
	require.NoError(t, err)

	cp, err := codec.Clone(doc)
	require.NoError(t, err)
	cp.QuestionByName("q1").VisibleIf = "changed"
	cp.Extras()["unknown"] = false

	assert.Equal(t, "{q0} > 2", doc.QuestionByName("q1").VisibleIf)
	assert.Equal(t, true, doc.Extras()["unknown"])
}

func TestFormat(t *testing.T) {
	assert.Equal(t, codec.YAML, codec.FormatFromPath("a/b.YML"))
	assert.Equal(t, codec.JSON, codec.FormatFromPath("survey.json"))
	assert.Equal(t, codec.JSON, codec.FormatFromPath("survey"))

	f, err := codec.ParseFormat("yml")
	require.NoError(t, err)
	assert.Equal(t, codec.YAML, f)
	_, err = codec.ParseFormat("xml")
	assert.Error(t, err)
}
