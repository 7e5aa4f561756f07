package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/survey"
)

type loggingMiddleware struct {
	next   ports.DocumentStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store call at debug level, failures at warn.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.DocumentStore) ports.DocumentStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "document_id", id, "duration", time.Since(start)}
	if err != nil {
		m.logger.WarnContext(ctx, "store call failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "store call", attrs...)
}

func (m *loggingMiddleware) Save(ctx context.Context, id string, doc *survey.Document) error {
	start := time.Now()
	err := m.next.Save(ctx, id, doc)
	m.log(ctx, "save", id, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*survey.Document, error) {
	start := time.Now()
	doc, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, start, err)
	return doc, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}
