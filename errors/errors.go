// Package errors defines the error taxonomy for flag definition and options
// unmarshalling.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// These are all DefinitionError.
var (
	ErrInvalidBooleanTag = errors.New("invalid boolean tag value")
	ErrInvalidShorthand  = errors.New("invalid shorthand flag")
	ErrUnsupportedType   = errors.New("unsupported field type")
	ErrDuplicateFlag     = errors.New("duplicate flag name")
)

// DefinitionError represents an error that occurred while processing a
// struct field's tags at definition time.
type DefinitionError interface {
	error
	Field() string
}

// InvalidBooleanTagError represents an invalid boolean value in struct tags.
type InvalidBooleanTagError struct {
	FieldName string
	TagName   string
	TagValue  string
}

func NewInvalidBooleanTagError(fieldName, tagName, tagValue string) *InvalidBooleanTagError {
	return &InvalidBooleanTagError{FieldName: fieldName, TagName: tagName, TagValue: tagValue}
}

func (e *InvalidBooleanTagError) Error() string {
	return fmt.Sprintf("field '%s': tag '%s=%s': invalid boolean value", e.FieldName, e.TagName, e.TagValue)
}

func (e *InvalidBooleanTagError) Field() string {
	return e.FieldName
}

func (e *InvalidBooleanTagError) Unwrap() error {
	return ErrInvalidBooleanTag
}

// InvalidShorthandError represents an invalid shorthand flag specification.
type InvalidShorthandError struct {
	FieldName string
	Shorthand string
}

func NewInvalidShorthandError(fieldName, shorthand string) *InvalidShorthandError {
	return &InvalidShorthandError{FieldName: fieldName, Shorthand: shorthand}
}

func (e *InvalidShorthandError) Error() string {
	return fmt.Sprintf("field '%s': shorthand flag '%s' must be a single character", e.FieldName, e.Shorthand)
}

func (e *InvalidShorthandError) Field() string {
	return e.FieldName
}

func (e *InvalidShorthandError) Unwrap() error {
	return ErrInvalidShorthand
}

// UnsupportedTypeError represents a struct field whose type cannot be
// mapped to a flag.
type UnsupportedTypeError struct {
	FieldName string
	TypeName  string
}

func NewUnsupportedTypeError(fieldName, typeName string) *UnsupportedTypeError {
	return &UnsupportedTypeError{FieldName: fieldName, TypeName: typeName}
}

func (e *UnsupportedTypeError) Error() string {
	return fmt.Sprintf("field '%s': type '%s' cannot be mapped to a flag", e.FieldName, e.TypeName)
}

func (e *UnsupportedTypeError) Field() string {
	return e.FieldName
}

func (e *UnsupportedTypeError) Unwrap() error {
	return ErrUnsupportedType
}

// DuplicateFlagError represents two struct fields mapping to the same flag name.
type DuplicateFlagError struct {
	FlagName     string
	FieldPath    string
	ExistingPath string
}

func NewDuplicateFlagError(flagName, fieldPath, existingPath string) *DuplicateFlagError {
	return &DuplicateFlagError{FlagName: flagName, FieldPath: fieldPath, ExistingPath: existingPath}
}

func (e *DuplicateFlagError) Error() string {
	return fmt.Sprintf("flag '%s': defined by both '%s' and '%s'", e.FlagName, e.ExistingPath, e.FieldPath)
}

func (e *DuplicateFlagError) Field() string {
	return e.FieldPath
}

func (e *DuplicateFlagError) Unwrap() error {
	return ErrDuplicateFlag
}

// ValidationError wraps multiple validation errors that occurred during
// options unmarshalling.
type ValidationError struct {
	ContextName string
	Errors      []error
}

func NewValidationError(contextName string, errs []error) *ValidationError {
	return &ValidationError{ContextName: contextName, Errors: errs}
}

func (e *ValidationError) Error() string {
	var sb strings.Builder
	if e.ContextName != "" {
		sb.WriteString(fmt.Sprintf("invalid options for %s", e.ContextName))
	} else {
		sb.WriteString("invalid options")
	}
	if len(e.Errors) >= 1 {
		sb.WriteString(":")
	}

	for _, err := range e.Errors {
		sb.WriteString("\n       ")
		sb.WriteString(err.Error())
	}

	return sb.String()
}

// UnderlyingErrors returns the slice of individual validation errors (immutable).
func (e *ValidationError) UnderlyingErrors() []error {
	if e.Errors == nil {
		return nil
	}

	result := make([]error, len(e.Errors))
	copy(result, e.Errors)

	return result
}
