package schema

import (
	"fmt"
	"strings"
)

// Type defines the contract for field validation.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "nonempty").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// StringType accepts any string, including the empty one.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// NonEmptyType accepts strings with at least one non-blank character.
type NonEmptyType struct{}

func (t *NonEmptyType) Name() string { return "nonempty" }

func (t *NonEmptyType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("must not be empty")
	}
	return nil
}

// OneOfType accepts one of a fixed set of strings.
type OneOfType struct {
	options []string
}

func (t *OneOfType) Name() string {
	return "(" + strings.Join(t.options, "|") + ")"
}

func (t *OneOfType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	for _, o := range t.options {
		if o == s {
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(t.options, ", "))
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// String creates a string type validator.
func String() Type { return &StringType{} }

// NonEmpty creates a validator for required string fields.
func NonEmpty() Type { return &NonEmptyType{} }

// OneOf creates an enumeration validator.
func OneOf(options ...string) Type { return &OneOfType{options: options} }

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// ErrCustomValidation is a helper for Custom validators returning plain messages.
func ErrCustomValidation(msg string) error {
	return fmt.Errorf("%s", msg)
}

// ParseType converts a type name to a Type.
// Supports "string", "nonempty" and enumerations written as "(a|b|c)".
func ParseType(typeStr string) (Type, error) {
	typeStr = strings.TrimSpace(typeStr)
	if len(typeStr) > 2 && typeStr[0] == '(' && typeStr[len(typeStr)-1] == ')' {
		options := strings.Split(typeStr[1:len(typeStr)-1], "|")
		for i := range options {
			options[i] = strings.TrimSpace(options[i])
			if options[i] == "" {
				return nil, fmt.Errorf("empty option in %s", typeStr)
			}
		}
		return OneOf(options...), nil
	}

	switch typeStr {
	case "string":
		return String(), nil
	case "nonempty":
		return NonEmpty(), nil
	default:
		return nil, fmt.Errorf("unsupported type: %s", typeStr)
	}
}

// ParseTypeMap converts a map of field names to type strings into a Schema.
// Example: {"gotoName": "nonempty", "mode": "(fast|slow)"}
func ParseTypeMap(typeMap map[string]string) (Schema, error) {
	result := make(Schema, len(typeMap))
	for key, typeStr := range typeMap {
		t, err := ParseType(typeStr)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", key, err)
		}
		result[key] = t
	}
	return result, nil
}
