package models

import (
	"errors"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	// ErrNotFound is returned when an id does not resolve to a post.
	ErrNotFound = errors.New("post not found")
	// ErrValidation is the kind shared by every ValidationError.
	ErrValidation = errors.New("validation failed")
)

// ValidationError carries per-field messages keyed by JSON path,
// e.g. "author.firstName".
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewDuplicateIDError reports an insert whose id is already taken.
func NewDuplicateIDError(id string) *ValidationError {
	return NewValidationError(map[string]string{"id": "duplicate id " + id})
}

// wrapValidation converts ozzo validation errors into a ValidationError.
// Internal rule errors pass through unchanged.
func wrapValidation(err error) error {
	if err == nil {
		return nil
	}
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := map[string]string{}
	flatten("", verrs, fields)
	return NewValidationError(fields)
}

func flatten(prefix string, verrs validation.Errors, out map[string]string) {
	for key, err := range verrs {
		if err == nil {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		var nested validation.Errors
		if errors.As(err, &nested) {
			flatten(path, nested, out)
			continue
		}
		out[path] = err.Error()
	}
}
