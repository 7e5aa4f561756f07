package middleware

import (
	"context"
	"errors"

	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/survey"
)

// ErrReadOnlyStore is returned by Save and Delete of a read-only store.
var ErrReadOnlyStore = errors.New("document store is read-only")

type readOnlyMiddleware struct {
	next ports.DocumentStore
}

// NewReadOnlyMiddleware rejects every write, whatever the caller.
func NewReadOnlyMiddleware() Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &readOnlyMiddleware{next: next}
	}
}

func (m *readOnlyMiddleware) Save(ctx context.Context, id string, doc *survey.Document) error {
	return ErrReadOnlyStore
}

func (m *readOnlyMiddleware) Load(ctx context.Context, id string) (*survey.Document, error) {
	return m.next.Load(ctx, id)
}

func (m *readOnlyMiddleware) Delete(ctx context.Context, id string) error {
	return ErrReadOnlyStore
}

func (m *readOnlyMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
