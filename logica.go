package logica

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/aretw0/logica/internal/logging"
	"github.com/aretw0/logica/internal/presentation/graph"
	"github.com/aretw0/logica/internal/validator"
	"github.com/aretw0/logica/pkg/logic"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/aretw0/logica/pkg/registry"
	"github.com/aretw0/logica/pkg/session"
	"github.com/aretw0/logica/pkg/survey"
	"github.com/aretw0/logica/pkg/survey/codec"
)

// Rename errors, shared with the transport adapters.
var (
	ErrNameInUse   = ports.ErrNameInUse
	ErrInvalidName = ports.ErrInvalidName
)

// Workspace runs logic operations on the documents of a store.
// Every write holds the document lock for its whole load-change-save cycle.
type Workspace struct {
	store       ports.DocumentStore
	sessions    *session.Manager
	sessionOpts []session.Option
	registry    *registry.Registry
	editorOpts  []logic.Option
	readOnly    bool
	logger      *slog.Logger
}

var _ ports.RuleService = (*Workspace)(nil)

// Option configures the Workspace.
type Option func(*Workspace)

// WithRegistry replaces the built-in binding kinds.
func WithRegistry(reg *registry.Registry) Option {
	return func(w *Workspace) {
		w.registry = reg
	}
}

// WithEditorOptions passes options to every editor the workspace opens.
func WithEditorOptions(opts ...logic.Option) Option {
	return func(w *Workspace) {
		w.editorOpts = append(w.editorOpts, opts...)
	}
}

// WithSessionOptions configures the document lock manager.
func WithSessionOptions(opts ...session.Option) Option {
	return func(w *Workspace) {
		w.sessionOpts = append(w.sessionOpts, opts...)
	}
}

// WithReadOnly rejects every operation that writes to the store.
func WithReadOnly(readOnly bool) Option {
	return func(w *Workspace) {
		w.readOnly = readOnly
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		w.logger = logger
	}
}

// New creates a Workspace over store.
func New(store ports.DocumentStore, opts ...Option) *Workspace {
	w := &Workspace{store: store}
	for _, opt := range opts {
		opt(w)
	}
	if w.registry == nil {
		w.registry = registry.NewDefault()
	}
	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	sessionOpts := append([]session.Option{session.WithLogger(w.logger)}, w.sessionOpts...)
	w.sessions = session.NewManager(store, sessionOpts...)
	return w
}

// Registry returns the binding kinds in use.
func (w *Workspace) Registry() *registry.Registry {
	return w.registry
}

// Sessions returns the lock manager guarding the store.
func (w *Workspace) Sessions() *session.Manager {
	return w.sessions
}

func (w *Workspace) editor(doc *survey.Document) *logic.Editor {
	opts := append([]logic.Option{logic.WithLogger(w.logger), logic.WithReadOnly(w.readOnly)}, w.editorOpts...)
	return logic.New(doc, w.registry, opts...)
}

// Documents lists the stored document IDs.
func (w *Workspace) Documents(ctx context.Context) ([]string, error) {
	return w.sessions.List(ctx)
}

// View opens a read-only editor on a snapshot of the document.
func (w *Workspace) View(ctx context.Context, id string) (*logic.Editor, error) {
	doc, err := w.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return w.editor(doc), nil
}

// Edit runs fn on an editor over the document and saves the document when fn
// modified it through Save or RemoveItem.
func (w *Workspace) Edit(ctx context.Context, id string, fn func(*logic.Editor) error) error {
	if w.readOnly {
		return logic.ErrReadOnly
	}
	return w.sessions.Update(ctx, id, func(doc *survey.Document) (bool, error) {
		ed := w.editor(doc)
		modified := false
		remove := ed.OnModified(func() { modified = true })
		defer remove()
		if err := fn(ed); err != nil {
			return false, err
		}
		return modified, nil
	})
}

// Items returns the logic items of a document. Hidden items follow the visible
// ones and continue their numbering.
func (w *Workspace) Items(ctx context.Context, id string, includeHidden bool) ([]ports.RuleItem, error) {
	ed, err := w.View(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ruleItems(ed, ed.Items(), 0, false)
	if includeHidden {
		out = append(out, ruleItems(ed, ed.InvisibleItems(), len(out), true)...)
	}
	return out, nil
}

func ruleItems(ed *logic.Editor, items []*logic.Item, offset int, hidden bool) []ports.RuleItem {
	out := make([]ports.RuleItem, 0, len(items))
	for i, it := range items {
		lines := []string{ed.ItemSummary(it)}
		var kinds []string
		for _, b := range it.Bindings() {
			lines = append(lines, ed.BindingText(b))
			kinds = append(kinds, b.Kind().Name)
		}
		out = append(out, ports.RuleItem{
			Index:      offset + i,
			Expression: it.Expression(),
			Text:       strings.Join(lines, "\n"),
			Kinds:      kinds,
			Hidden:     hidden,
		})
	}
	return out
}

// Rename renames the question or calculated value called oldName, when there is
// one, and rewrites every reference to it. It returns the number of rewritten
// properties.
func (w *Workspace) Rename(ctx context.Context, id, oldName, newName string) (int, error) {
	oldName, newName = strings.TrimSpace(oldName), strings.TrimSpace(newName)
	if oldName == "" || newName == "" {
		return 0, ErrInvalidName
	}
	if w.readOnly {
		return 0, logic.ErrReadOnly
	}

	changed := 0
	err := w.sessions.Update(ctx, id, func(doc *survey.Document) (bool, error) {
		// Without a node named oldName only the references move, e.g. to repair them.
		renamed := false
		if target := variable(doc, oldName); target != nil {
			if other := variable(doc, newName); other != nil && other != target {
				return false, fmt.Errorf("%w: %s", ErrNameInUse, newName)
			}
			renamed = doc.Rename(target, newName)
		}
		changed = w.editor(doc).RenamePropagate(oldName, newName)
		return renamed || changed > 0, nil
	})
	if err != nil {
		return 0, err
	}
	w.logger.Info("identifier renamed", "document_id", id, "old", oldName, "new", newName, "changed", changed)
	return changed, nil
}

// variable finds the question or calculated value named name.
func variable(doc *survey.Document, name string) survey.Node {
	if q := doc.QuestionByName(name); q != nil {
		return q
	}
	for _, v := range doc.CalculatedValues {
		if strings.EqualFold(v.Name(), name) {
			return v
		}
	}
	return nil
}

// RemoveItem deletes the visible item at index.
func (w *Workspace) RemoveItem(ctx context.Context, id string, index int) error {
	return w.Edit(ctx, id, func(ed *logic.Editor) error {
		items := ed.Items()
		if index < 0 || index >= len(items) {
			return fmt.Errorf("%w: index %d", logic.ErrUnknownItem, index)
		}
		return ed.RemoveItem(items[index])
	})
}

// Lint checks the syntax and references of every logic expression.
func (w *Workspace) Lint(ctx context.Context, id string) ([]ports.LintIssue, error) {
	doc, err := w.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	issues := validator.New(w.registry).Check(doc)
	out := make([]ports.LintIssue, 0, len(issues))
	for _, i := range issues {
		out = append(out, ports.LintIssue{
			Severity: string(i.Severity),
			Node:     i.Node,
			Property: i.Property,
			Message:  i.Message,
		})
	}
	return out, nil
}

// Graph renders the rule dependency graph of a document as Mermaid source.
func (w *Workspace) Graph(ctx context.Context, id string) (string, error) {
	return w.GraphFocus(ctx, id, "")
}

// GraphFocus renders the graph highlighting the rules that read focus.
func (w *Workspace) GraphFocus(ctx context.Context, id, focus string) (string, error) {
	ed, err := w.View(ctx, id)
	if err != nil {
		return "", err
	}
	items := append(ed.Items(), ed.InvisibleItems()...)
	var overlay *graph.GraphOverlay
	if focus != "" {
		overlay = &graph.GraphOverlay{Focus: focus}
	}
	return graph.GenerateMermaid(graph.FromItems(items), overlay), nil
}

// LoadFile decodes a survey file; the format follows the extension.
func LoadFile(path string) (*survey.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := codec.Decode(data, codec.FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Open loads a survey file and returns an editor on it.
func Open(path string, reg *registry.Registry, opts ...logic.Option) (*logic.Editor, error) {
	doc, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if reg == nil {
		reg = registry.NewDefault()
	}
	return logic.New(doc, reg, opts...), nil
}
