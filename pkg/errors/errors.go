package errors

import (
	"fmt"
)

// ParseError represents a config or theme file parsing failure with optional
// line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration or widget-spec validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// WidgetError represents a failure in one lifecycle stage of a single widget.
// A WidgetError is recorded on the widget and never aborts the run for others.
type WidgetError struct {
	WidgetID string
	Stage    string
	Err      error
}

// NewWidgetError constructs a WidgetError for the given widget and stage.
func NewWidgetError(widgetID, stage string, err error) error {
	return &WidgetError{WidgetID: widgetID, Stage: stage, Err: err}
}

func (e *WidgetError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage != "" {
		return fmt.Sprintf("widget %s: %s: %v", e.WidgetID, e.Stage, e.Err)
	}
	return fmt.Sprintf("widget %s: %v", e.WidgetID, e.Err)
}

// Unwrap exposes the root error.
func (e *WidgetError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ResolveError indicates a color name that could not be resolved against the
// palette. Callers substitute a default marker and keep rendering.
type ResolveError struct {
	Name string
}

// NewResolveError constructs a ResolveError for the given color name.
func NewResolveError(name string) error {
	return &ResolveError{Name: name}
}

func (e *ResolveError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("resolve error: unknown color %q", e.Name)
}
