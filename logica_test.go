package logica_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aretw0/logica"
	"github.com/aretw0/logica/pkg/adapters/file"
	"github.com/aretw0/logica/pkg/adapters/memory"
	"github.com/aretw0/logica/pkg/dsl"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorkspace(t *testing.T, opts ...logica.Option) (*logica.Workspace, *memory.Store) {
	t.Helper()
	b := dsl.New()
	page := b.Page("page1")
	page.Question("q1", survey.QuestionText).Title("First")
	page.Question("q2", survey.QuestionText).VisibleIf("{q1} = 1").EnableIf("{q1} = 1")
	page.Question("q3", survey.QuestionText).RequiredIf("{q9} = 1")
	page.Question("q4", survey.QuestionComment).Validate("{q4} notempty", "required")
	b.CalculatedValue("total", "{q1} + 1")
	b.Trigger(survey.TriggerCopyValue).When("{q2} = 3").Set(survey.PropSetToName, "q3").Set(survey.PropFromName, "q1")

	store, err := b.BuildStore("doc")
	require.NoError(t, err)
	return logica.New(store, opts...), store
}

func TestWorkspace_Items(t *testing.T) {
	ws, _ := newWorkspace(t)
	ctx := context.Background()

	items, err := ws.Items(ctx, "doc", false)
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "{q1} = 1", items[0].Expression)
	assert.Equal(t, []string{registry.QuestionVisibility, registry.QuestionEnable}, items[0].Kinds)
	assert.Equal(t, "{q9} = 1", items[1].Expression)
	assert.Equal(t, "{q2} = 3", items[2].Expression)
	assert.Contains(t, items[2].Text, "Copy into question: {q3} value from question {q1}")

	all, err := ws.Items(ctx, "doc", true)
	require.NoError(t, err)
	require.Greater(t, len(all), 3)
	for i, it := range all {
		assert.Equal(t, i, it.Index)
		assert.Equal(t, i >= 3, it.Hidden)
	}

	_, err = ws.Items(ctx, "missing", false)
	assert.ErrorIs(t, err, ports.ErrDocumentNotFound)
}

func TestWorkspace_Rename(t *testing.T) {
	ws, store := newWorkspace(t)
	ctx := context.Background()

	changed, err := ws.Rename(ctx, "doc", "Q1", "first")
	require.NoError(t, err)
	assert.Equal(t, 4, changed)

	doc, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Nil(t, doc.QuestionByName("q1"))
	require.NotNil(t, doc.QuestionByName("first"))
	assert.Equal(t, "{first} = 1", doc.QuestionByName("q2").VisibleIf)
	assert.Equal(t, "{first} + 1", doc.CalculatedValues[0].Expression)
	assert.Equal(t, "first", doc.Triggers[0].FromName)
}

func TestWorkspace_RenameErrors(t *testing.T) {
	ws, _ := newWorkspace(t)
	ctx := context.Background()

	_, err := ws.Rename(ctx, "doc", "q1", "q2")
	assert.ErrorIs(t, err, logica.ErrNameInUse)

	_, err = ws.Rename(ctx, "doc", "q1", "TOTAL")
	assert.ErrorIs(t, err, logica.ErrNameInUse)

	_, err = ws.Rename(ctx, "doc", " ", "x")
	assert.ErrorIs(t, err, logica.ErrInvalidName)

	changed, err := ws.Rename(ctx, "doc", "q1", "Q1")
	require.NoError(t, err)
	assert.Equal(t, 4, changed)
}

func TestWorkspace_RenameUnknownVariable(t *testing.T) {
	ws, store := newWorkspace(t)
	ctx := context.Background()

	changed, err := ws.Rename(ctx, "doc", "q9", "q3")
	require.NoError(t, err)
	assert.Equal(t, 1, changed)

	doc, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "{q3} = 1", doc.QuestionByName("q3").RequiredIf)
}

func TestWorkspace_EditsKeepUnmanagedProperties(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "s.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
  "showProgressBar": "top",
  "pages": [{"name": "page1", "elements": [
    {"type": "text", "name": "q1", "isRequired": true, "inputType": "number"},
    {"type": "radiogroup", "name": "q2", "colCount": 3, "visibleIf": "{q1} = 1", "choices": [1, 2]},
    {"type": "html", "name": "info", "html": "<b>hi</b>", "visibleIf": "{q1} = 2"}
  ]}]
}`), 0o644))

	ws := logica.New(file.New(dir))
	ctx := context.Background()
	_, err := ws.Rename(ctx, "s", "q1", "age")
	require.NoError(t, err)
	require.NoError(t, ws.RemoveItem(ctx, "s", 1))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{
  "showProgressBar": "top",
  "pages": [{"name": "page1", "elements": [
    {"type": "text", "name": "age", "isRequired": true, "inputType": "number"},
    {"type": "radiogroup", "name": "q2", "colCount": 3, "visibleIf": "{age} = 1", "choices": [1, 2]},
    {"type": "html", "name": "info", "html": "<b>hi</b>"}
  ]}]
}`, string(data))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "top", raw["showProgressBar"])
}

func TestWorkspace_RemoveItem(t *testing.T) {
	ws, store := newWorkspace(t)
	ctx := context.Background()

	require.NoError(t, ws.RemoveItem(ctx, "doc", 2))

	doc, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Empty(t, doc.Triggers)

	err = ws.RemoveItem(ctx, "doc", 7)
	assert.ErrorIs(t, err, logic.ErrUnknownItem)
}

func TestWorkspace_Edit(t *testing.T) {
	ws, store := newWorkspace(t)
	ctx := context.Background()

	err := ws.Edit(ctx, "doc", func(ed *logic.Editor) error {
		if err := ed.AddNew(); err != nil {
			return err
		}
		if err := ed.SetExpression("{total} > 10"); err != nil {
			return err
		}
		if _, err := ed.AddOperation(registry.QuestionRequire, ed.Document().QuestionByName("q4")); err != nil {
			return err
		}
		if !ed.Save() {
			return ed.Err()
		}
		return nil
	})
	require.NoError(t, err)

	doc, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Equal(t, "{total} > 10", doc.QuestionByName("q4").RequiredIf)

	err = ws.Edit(ctx, "doc", func(ed *logic.Editor) error {
		require.NoError(t, ed.AddNew())
		if !ed.Save() {
			return ed.Err()
		}
		return nil
	})
	assert.ErrorIs(t, err, logic.ErrInvalidExpression)
}

func TestWorkspace_ReadOnly(t *testing.T) {
	ws, _ := newWorkspace(t, logica.WithReadOnly(true))
	ctx := context.Background()

	_, err := ws.Rename(ctx, "doc", "q1", "x")
	assert.ErrorIs(t, err, logic.ErrReadOnly)
	assert.ErrorIs(t, ws.RemoveItem(ctx, "doc", 0), logic.ErrReadOnly)

	items, err := ws.Items(ctx, "doc", false)
	require.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestWorkspace_ShowTitles(t *testing.T) {
	ws, _ := newWorkspace(t, logica.WithEditorOptions(logic.WithShowTitles(true)))

	items, err := ws.Items(context.Background(), "doc", false)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(items[0].Text, "When expression: '{First} = 1' returns true:"), items[0].Text)
}

func TestWorkspace_LintAndGraph(t *testing.T) {
	ws, _ := newWorkspace(t)
	ctx := context.Background()

	issues, err := ws.Lint(ctx, "doc")
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "warning", issues[0].Severity)
	assert.Equal(t, "unknown variable {q9}", issues[0].Message)

	src, err := ws.GraphFocus(ctx, "doc", "q1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(src, "graph LR\n"))
	assert.Contains(t, src, "q_q1 --> rule_1")
	assert.Contains(t, src, "class q_q1 focus;")

	plain, err := ws.Graph(ctx, "doc")
	require.NoError(t, err)
	assert.NotContains(t, plain, "classDef")
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
elements:
  - type: text
    name: q1
  - type: text
    name: q2
    visibleIf: "{q1} = 1"
`), 0644))

	ed, err := logica.Open(path, nil)
	require.NoError(t, err)
	require.Len(t, ed.Items(), 1)
	assert.Equal(t, "{q1} = 1", ed.Items()[0].Expression())

	_, err = logica.Open(filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}
