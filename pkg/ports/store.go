package ports

import (
	"context"
	"errors"

	"github.com/aretw0/logica/pkg/survey"
)

// ErrDocumentNotFound is returned by DocumentStore.Load for unknown IDs.
var ErrDocumentNotFound = errors.New("document not found")

// DocumentStore persists survey documents by ID.
type DocumentStore interface {
	// Save writes the document, replacing any previous version.
	Save(ctx context.Context, id string, doc *survey.Document) error

	// Load returns an independent copy of the stored document.
	// Returns ErrDocumentNotFound if the document does not exist.
	Load(ctx context.Context, id string) (*survey.Document, error)

	// Delete removes the document. Deleting a missing document is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the stored IDs in ascending order.
	List(ctx context.Context) ([]string, error)
}
