package errors

import (
	"fmt"
)

// ParseError represents a JSON or YAML parsing failure with optional line metadata.
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

// ValidationError captures configuration, scan record, and schema validation issues.
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

// ReferenceKind names the kind of symbol a ReferenceError failed to resolve.
type ReferenceKind string

const (
	ReferenceComponent  ReferenceKind = "component"
	ReferenceNode       ReferenceKind = "node"
	ReferencePaintStyle ReferenceKind = "paint style"
	ReferenceTextStyle  ReferenceKind = "text style"
)

// ReferenceError reports a symbolic reference that did not resolve to a concrete host object.
type ReferenceError struct {
	Kind ReferenceKind
	Name string
}

// NewReferenceError constructs a ReferenceError.
func NewReferenceError(kind ReferenceKind, name string) error {
	return &ReferenceError{Kind: kind, Name: name}
}

func (e *ReferenceError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("unresolved %s reference %q", e.Kind, e.Name)
}

// HostError represents a failed mutation or query against the host document.
type HostError struct {
	NodeID string
	Op     string
	Err    error
}

// NewHostError constructs a HostError for the given node and operation.
func NewHostError(nodeID, op string, err error) error {
	return &HostError{NodeID: nodeID, Op: op, Err: err}
}

func (e *HostError) Error() string {
	if e == nil {
		return ""
	}
	if e.NodeID != "" {
		return fmt.Sprintf("host error [%s] %s: %v", e.NodeID, e.Op, e.Err)
	}
	return fmt.Sprintf("host error %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error.
func (e *HostError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FontError indicates a font could not be loaded or is missing from the document.
type FontError struct {
	Family string
	Style  string
	Err    error
}

// NewFontError constructs a FontError.
func NewFontError(family, style string, err error) error {
	return &FontError{Family: family, Style: style, Err: err}
}

func (e *FontError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return fmt.Sprintf("font error %s %s: %v", e.Family, e.Style, e.Err)
	}
	return fmt.Sprintf("font error %s %s", e.Family, e.Style)
}

// Unwrap exposes the underlying error.
func (e *FontError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// GenerationError wraps a failure that aborted tree generation at the given stage.
type GenerationError struct {
	Stage string
	Err   error
}

// NewGenerationError constructs a GenerationError.
func NewGenerationError(stage string, err error) error {
	return &GenerationError{Stage: stage, Err: err}
}

func (e *GenerationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Stage != "" {
		return fmt.Sprintf("generation error during %s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("generation error: %v", e.Err)
}

// Unwrap exposes the root error.
func (e *GenerationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
