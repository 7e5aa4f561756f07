package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/logica/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contractDocument() *survey.Document {
	doc := survey.NewDocument()
	doc.DocTitle = "Contract"
	page := doc.AddPage(survey.NewPage("page1"))
	page.VisibleIf = "{q2} = 1"
	q1 := survey.NewQuestion(survey.QuestionText, "q1")
	q1.VisibleIf = "{q2} notempty"
	page.AddElement(q1)
	page.AddElement(survey.NewQuestion(survey.QuestionText, "q2"))
	trigger := survey.NewTrigger(survey.TriggerComplete)
	trigger.Expression = "{q1} = 'done'"
	doc.AddTrigger(trigger)
	return doc
}

// RunDocumentStoreContract runs a suite of tests to verify that a DocumentStore
// implementation adheres to the interface contract.
func RunDocumentStoreContract(t *testing.T, store DocumentStore) {
	ctx := context.Background()
	id := "contract-test-doc-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		err := store.Save(ctx, id, contractDocument())
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, id)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, "Contract", loaded.DocTitle)
		require.Len(t, loaded.Pages, 1)
		assert.Equal(t, "{q2} = 1", loaded.Pages[0].VisibleIf)
		q1 := loaded.QuestionByName("q1")
		require.NotNil(t, q1)
		assert.Equal(t, "{q2} notempty", q1.VisibleIf)
		require.Len(t, loaded.Triggers, 1)
		assert.Equal(t, "{q1} = 'done'", loaded.Triggers[0].Expression)
	})

	t.Run("Load Returns Copy", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractDocument()))

		first, err := store.Load(ctx, id)
		require.NoError(t, err)
		first.QuestionByName("q1").VisibleIf = "changed"

		second, err := store.Load(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "{q2} notempty", second.QuestionByName("q1").VisibleIf)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+id)
		assert.ErrorIs(t, err, ErrDocumentNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, id, contractDocument()))

		err := store.Delete(ctx, id)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, id)
		assert.ErrorIs(t, err, ErrDocumentNotFound, "Load after Delete should return ErrDocumentNotFound")

		assert.NoError(t, store.Delete(ctx, id), "Delete of a missing document should succeed")
	})

	t.Run("List", func(t *testing.T) {
		id1 := id + "-1"
		id2 := id + "-2"
		require.NoError(t, store.Save(ctx, id2, contractDocument()))
		require.NoError(t, store.Save(ctx, id1, contractDocument()))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		ids, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, ids, id1)
		assert.Contains(t, ids, id2)
		assert.IsIncreasing(t, ids)
	})
}
