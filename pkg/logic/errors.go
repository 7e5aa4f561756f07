package logic

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidExpression is returned when the staged expression is empty or malformed.
	ErrInvalidExpression = errors.New("expression is empty or invalid")
	// ErrNoOperations is returned when the staged item has no bindings.
	ErrNoOperations = errors.New("no operations")
	// ErrInvalidOperation is returned when at least one staged binding is malformed.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrReadOnly is returned by editing calls on a read-only editor.
	ErrReadOnly = errors.New("logic editor is read-only")
	// ErrNotEditing is returned by calls that need a staged item.
	ErrNotEditing = errors.New("no item is being edited")
	// ErrNotViewing is returned by calls that are only valid outside an edit session.
	ErrNotViewing = errors.New("an item is being edited")
	// ErrUnknownKind is returned when a kind name is not registered.
	ErrUnknownKind = errors.New("unknown logic kind")
	// ErrUnknownItem is returned when an item is not part of the current scan.
	ErrUnknownItem = errors.New("item is not part of the document")
)

// Messages shown to users for a rejected save.
const (
	TextInvalidExpression = "The logic expression is empty or invalid. Please correct it."
	TextNoOperations      = "Please, add at least one operation."
	TextInvalidOperation  = "Please, fix problems in your operation(s)."
)

// UserText returns the message shown to users for err, or err's own text.
func UserText(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidExpression):
		return TextInvalidExpression
	case errors.Is(err, ErrNoOperations):
		return TextNoOperations
	case errors.Is(err, ErrInvalidOperation):
		return TextInvalidOperation
	}
	return err.Error()
}

// OperationError groups the per-binding failures of a rejected save.
type OperationError struct {
	Failures []BindingFailure
}

// BindingFailure is the validation failure of one staged binding.
type BindingFailure struct {
	Index   int
	Binding *Binding
	Err     error
}

func (e *OperationError) Error() string {
	var sb strings.Builder
	sb.WriteString(ErrInvalidOperation.Error())
	for _, f := range e.Failures {
		fmt.Fprintf(&sb, "\n  operation %d (%s): %v", f.Index+1, f.Binding.Kind().Name, f.Err)
	}
	return sb.String()
}

// Is lets errors.Is match ErrInvalidOperation.
func (e *OperationError) Is(target error) bool {
	return target == ErrInvalidOperation
}

// Unwrap exposes the individual binding errors.
func (e *OperationError) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}
