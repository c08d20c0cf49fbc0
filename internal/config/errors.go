package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingRequiredSource indicates that a source marked as required
	// does not exist. It is fatal to [Load] and [LoadSources].
	ErrMissingRequiredSource = errors.New("required config source not found")
	// ErrMalformedSource indicates that a source exists but cannot be read
	// or parsed. Loaders log it and contribute an empty tree instead.
	ErrMalformedSource = errors.New("malformed config source")
	// ErrUnsupportedFormat is returned by [ParseFormat] for unknown formats.
	ErrUnsupportedFormat = errors.New("unsupported config format")
	// ErrInvalidTarget indicates that [Load] or [Decode] received something
	// other than a non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("config target must be a non-nil pointer to a struct")
)

// FieldError describes one violated field of a typed configuration.
type FieldError struct {
	// Path is the dotted key path of the field (e.g. "model.top_p").
	Path string
	// Reason explains the violation.
	Reason string
}

func (e FieldError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// ValidationError aggregates every violation found while decoding and
// validating a configuration. It is never returned empty.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return fmt.Sprintf("config validation failed (%d error(s)): %s", len(e.Fields), strings.Join(msgs, "; "))
}

// Paths returns the violated field paths in report order.
func (e *ValidationError) Paths() []string {
	paths := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		paths = append(paths, f.Path)
	}
	return paths
}

// Field returns the violation recorded for path, if any.
func (e *ValidationError) Field(path string) (FieldError, bool) {
	for _, f := range e.Fields {
		if f.Path == path {
			return f, true
		}
	}
	return FieldError{}, false
}
