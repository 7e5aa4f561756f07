package expression

import (
	"fmt"
	"strings"

	"github.com/dop251/goja"
)

// Validator decides whether an expression is syntactically valid.
type Validator interface {
	ValidateSyntax(expr string) bool
}

// Func adapts a plain function to the Validator interface.
type Func func(expr string) bool

func (f Func) ValidateSyntax(expr string) bool { return f(expr) }

// SyntaxValidator checks expressions against the survey expression grammar.
// The zero value is ready to use.
type SyntaxValidator struct{}

// NewSyntaxValidator returns the default validator.
func NewSyntaxValidator() *SyntaxValidator {
	return &SyntaxValidator{}
}

// ValidateSyntax reports whether expr is a non-empty, well-formed expression.
func (v *SyntaxValidator) ValidateSyntax(expr string) bool {
	return v.Check(expr) == nil
}

// Check returns the first syntax problem of expr, or nil.
func (v *SyntaxValidator) Check(expr string) error {
	if strings.TrimSpace(expr) == "" {
		return &SyntaxError{Msg: "empty expression"}
	}
	tokens, err := lex(expr)
	if err != nil {
		return err
	}
	js, err := translate(tokens)
	if err != nil {
		return err
	}
	if _, err := goja.Compile("expression", "("+js+")", false); err != nil {
		return fmt.Errorf("expression: %w", err)
	}
	return nil
}

// Check validates expr with the default validator.
func Check(expr string) error {
	return NewSyntaxValidator().Check(expr)
}
