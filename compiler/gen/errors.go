package gen

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure cases.
var (
	// ErrMalformedEntity indicates an entity shape that lacks a required attribute.
	ErrMalformedEntity = errors.New("umlgen: malformed entity")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("umlgen: missing configuration")
	// ErrTemplate indicates a template that could not be read or parsed.
	ErrTemplate = errors.New("umlgen: template unavailable")
	// ErrGenerationFailed indicates a code generation failure.
	ErrGenerationFailed = errors.New("umlgen: code generation failed")
	// ErrPathEscape indicates a generated file name that resolves outside the target.
	ErrPathEscape = errors.New("umlgen: path escapes output directory")
)

// EntityError represents an entity shape that cannot be turned into an Entity.
type EntityError struct {
	ID      string // Cell id, if present
	Pos     string // Location of the cell in the diagram
	Attr    string // Missing or conflicting attribute
	Message string
}

// Error implements the error interface.
func (e *EntityError) Error() string {
	var b strings.Builder
	b.WriteString("umlgen: entity error")
	if e.ID != "" {
		fmt.Fprintf(&b, " on cell %q", e.ID)
	}
	if e.Pos != "" {
		b.WriteString(" at ")
		b.WriteString(e.Pos)
	}
	if e.Attr != "" {
		b.WriteString(" attribute ")
		b.WriteString(e.Attr)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for EntityError.
func (e *EntityError) Is(target error) bool {
	return target == ErrMalformedEntity
}

// NewEntityError creates a new EntityError.
func NewEntityError(id, pos, attr, message string) *EntityError {
	return &EntityError{
		ID:      id,
		Pos:     pos,
		Attr:    attr,
		Message: message,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("umlgen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("umlgen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// TemplateError represents a template file that is missing, unreadable or invalid.
type TemplateError struct {
	Artifact string
	File     string
	Cause    error
}

// Error implements the error interface.
func (e *TemplateError) Error() string {
	var b strings.Builder
	b.WriteString("umlgen: template error")
	if e.Artifact != "" {
		b.WriteString(" for artifact ")
		b.WriteString(e.Artifact)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for TemplateError.
func (e *TemplateError) Is(target error) bool {
	return target == ErrTemplate
}

// NewTemplateError creates a new TemplateError.
func NewTemplateError(artifact, file string, cause error) *TemplateError {
	return &TemplateError{
		Artifact: artifact,
		File:     file,
		Cause:    cause,
	}
}

// GenerationError represents a code generation error.
type GenerationError struct {
	Phase   string // "render", "format", "write"
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("umlgen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// IsEntityError reports whether the error is an EntityError.
func IsEntityError(err error) bool {
	var entErr *EntityError
	return errors.As(err, &entErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsTemplateError reports whether the error is a TemplateError.
func IsTemplateError(err error) bool {
	var tmplErr *TemplateError
	return errors.As(err, &tmplErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
