package ports

import (
	"context"
	"errors"
)

var (
	// ErrNameInUse is returned when a rename target already names another question
	// or calculated value.
	ErrNameInUse = errors.New("name is already in use")
	// ErrInvalidName is returned for blank rename arguments.
	ErrInvalidName = errors.New("name cannot be empty")
)

// RuleItem is the transport view of one logic item.
type RuleItem struct {
	Index      int      `json:"index"`
	Expression string   `json:"expression"`
	Text       string   `json:"text"`
	Kinds      []string `json:"kinds"`
	Hidden     bool     `json:"hidden,omitempty"`
}

// LintIssue is one problem found in the logic of a document.
type LintIssue struct {
	Severity string `json:"severity"`
	Node     string `json:"node"`
	Property string `json:"property"`
	Message  string `json:"message"`
}

// RuleService is the document-level API consumed by the transport adapters.
type RuleService interface {
	// Documents lists the stored document IDs.
	Documents(ctx context.Context) ([]string, error)

	// Items returns the editable logic items of a document, followed by the hidden ones
	// when includeHidden is set.
	Items(ctx context.Context, id string, includeHidden bool) ([]RuleItem, error)

	// Rename renames a question or calculated value and rewrites every reference to it.
	// It returns the number of rewritten properties.
	Rename(ctx context.Context, id, oldName, newName string) (int, error)

	// RemoveItem deletes the item at index from the document.
	RemoveItem(ctx context.Context, id string, index int) error

	// Lint checks the syntax and references of every logic expression.
	Lint(ctx context.Context, id string) ([]LintIssue, error)

	// Graph renders the rule dependency graph as Mermaid source.
	Graph(ctx context.Context, id string) (string, error)
}
