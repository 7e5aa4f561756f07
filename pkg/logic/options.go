package logic

import (
	"log/slog"

	"github.com/aretw0/logica/internal/logging"
	"github.com/aretw0/logica/pkg/expression"
)

// Options configures an Editor.
type Options struct {
	// ShowTitles displays question titles instead of names inside expressions and
	// question references.
	ShowTitles bool
	// ReadOnly rejects every call that would start an edit or change the document.
	ReadOnly  bool
	Validator expression.Validator
	Logger    *slog.Logger
	Hooks     Hooks
}

// Option configures the Editor.
type Option func(*Options)

// WithShowTitles toggles titles in rendered texts.
func WithShowTitles(show bool) Option {
	return func(o *Options) {
		o.ShowTitles = show
	}
}

// WithReadOnly makes the editor read-only.
func WithReadOnly(readOnly bool) Option {
	return func(o *Options) {
		o.ReadOnly = readOnly
	}
}

// WithValidator replaces the expression syntax validator.
func WithValidator(v expression.Validator) Option {
	return func(o *Options) {
		o.Validator = v
	}
}

// WithLogger configures a logger for the Editor.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(o *Options) {
		o.Hooks = hooks
	}
}

func buildOptions(opts []Option) Options {
	o := Options{
		Validator: expression.NewSyntaxValidator(),
		Logger:    logging.NewNop(), // Default to no-op
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Validator == nil {
		o.Validator = expression.NewSyntaxValidator()
	}
	if o.Logger == nil {
		o.Logger = logging.NewNop()
	}
	return o
}

// ScanEvent describes a completed scan.
type ScanEvent struct {
	Items     int
	Invisible int
}

// CommitEvent describes a change written to the document.
type CommitEvent struct {
	// Mode is the session mode that committed, or ModeView for RemoveItem.
	Mode       Mode
	Expression string
	Written    int
	Cleared    int
	Dropped    int
	Merged     int
}

// RejectEvent describes a save refused by validation.
type RejectEvent struct {
	Mode Mode
	Err  error
}

// RenameEvent describes a finished rename propagation.
type RenameEvent struct {
	OldName string
	NewName string
	Changed int
}

// Hooks are optional callbacks observing the editor.
type Hooks struct {
	OnScan   func(*ScanEvent)
	OnCommit func(*CommitEvent)
	OnReject func(*RejectEvent)
	OnRename func(*RenameEvent)
}
