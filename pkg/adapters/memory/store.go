package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/aretw0/logica/pkg/survey/codec"
)

// Store implements ports.DocumentStore in memory.
// Documents are kept encoded so callers never share nodes with the store.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// NewFromDocuments creates a store preloaded with docs.
func NewFromDocuments(docs map[string]*survey.Document) (*Store, error) {
	s := NewStore()
	for id, doc := range docs {
		if err := s.Save(context.Background(), id, doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Save persists the document in memory.
func (s *Store) Save(ctx context.Context, id string, doc *survey.Document) error {
	data, err := codec.Encode(doc, codec.JSON)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = data
	return nil
}

// Load decodes a fresh copy of the document.
func (s *Store) Load(ctx context.Context, id string) (*survey.Document, error) {
	s.mu.RLock()
	data, ok := s.data[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ports.ErrDocumentNotFound
	}
	return codec.Decode(data, codec.JSON)
}

// Delete removes the document.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
