package session_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aretw0/logica/pkg/adapters/memory"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/session"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SlowStore adds latency to provoke lost updates if locking is missing.
type SlowStore struct {
	*memory.Store
}

func (s SlowStore) Load(ctx context.Context, id string) (*survey.Document, error) {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Load(ctx, id)
}

func (s SlowStore) Save(ctx context.Context, id string, doc *survey.Document) error {
	time.Sleep(5 * time.Millisecond)
	return s.Store.Save(ctx, id, doc)
}

func TestManager_UpdateSerializesWriters(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	id := "race-test"

	doc := survey.NewDocument()
	doc.AddPage(survey.NewPage("page1"))
	require.NoError(t, manager.Save(ctx, id, doc))

	var wg sync.WaitGroup
	writers := 10
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			err := manager.Update(ctx, id, func(d *survey.Document) (bool, error) {
				d.Pages[0].AddElement(survey.NewQuestion(survey.QuestionText, fmt.Sprintf("q%d", n)))
				return true, nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	loaded, err := manager.Load(ctx, id)
	require.NoError(t, err)
	assert.Len(t, loaded.AllQuestions(), writers, "every update must survive")
}

func TestManager_UpdateSkipsUnchanged(t *testing.T) {
	store := memory.NewStore()
	manager := session.NewManager(store)
	ctx := context.Background()

	err := manager.Update(ctx, "missing", func(*survey.Document) (bool, error) { return true, nil })
	assert.ErrorIs(t, err, ports.ErrDocumentNotFound)

	require.NoError(t, manager.Save(ctx, "doc", survey.NewDocument()))
	err = manager.Update(ctx, "doc", func(d *survey.Document) (bool, error) {
		d.DocTitle = "not saved"
		return false, nil
	})
	require.NoError(t, err)

	loaded, err := store.Load(ctx, "doc")
	require.NoError(t, err)
	assert.Empty(t, loaded.DocTitle)

	boom := errors.New("boom")
	err = manager.Update(ctx, "doc", func(*survey.Document) (bool, error) { return true, boom })
	assert.ErrorIs(t, err, boom)
}

func TestManager_LoadOrCreate(t *testing.T) {
	manager := session.NewManager(SlowStore{memory.NewStore()})
	ctx := context.Background()
	id := "atomic-init"

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc, err := manager.LoadOrCreate(ctx, id)
			assert.NoError(t, err)
			assert.NotNil(t, doc)
		}()
	}
	wg.Wait()

	ids, err := manager.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)
}

type recordingLocker struct {
	mu    sync.Mutex
	keys  []string
	ttl   time.Duration
	fails bool
}

func (l *recordingLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	if l.fails {
		return nil, errors.New("unavailable")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.keys = append(l.keys, key)
	l.ttl = ttl
	return func(context.Context) error { return errors.New("already expired") }, nil
}

func TestManager_DistributedLocker(t *testing.T) {
	locker := &recordingLocker{}
	manager := session.NewManager(memory.NewStore(), session.WithLocker(locker), session.WithLockTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, manager.Save(ctx, "doc", survey.NewDocument()))
	assert.Equal(t, []string{"doc"}, locker.keys)
	assert.Equal(t, time.Minute, locker.ttl)

	locker.fails = true
	err := manager.Save(ctx, "doc", survey.NewDocument())
	assert.ErrorContains(t, err, "distributed lock")
}
