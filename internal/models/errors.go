package models

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNotFound is returned by sources when no active record matches an identifier.
var ErrNotFound = errors.New("not found")

// NotFoundError names the kind of entity that could not be found so the
// transport layer can render "<Kind> not found".
type NotFoundError struct {
	Kind       string
	Identifier string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Kind)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFound returns a NotFoundError for kind and identifier.
func NewNotFound(kind, identifier string) error {
	return &NotFoundError{Kind: kind, Identifier: identifier}
}

// ValidationError reports rejected request parameters, keyed by field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// NewValidationError returns a ValidationError for a single field.
func NewValidationError(field, rule string) error {
	return &ValidationError{Fields: map[string]string{field: rule}}
}
