// Package errors provides unified error handling across the deckbuilder system.
//
// SYSTEM ARCHITECTURE ROLE:
// This module serves as the foundation for error handling across the conversion
// and generation pipeline. It standardizes error representation, categorization,
// and the "actionable message" policy: every fatal error carries enough context
// (slide number, field name, available alternatives, a Fix suggestion) for an
// author hand-writing YAML or JSON to self-correct without reading source code.
//
// KEY RESPONSIBILITIES:
// - Define standardized error codes and categories for consistent identification
// - Provide structured error types (AppError) with severity levels and context
// - Provide ValidationError for slide/field-scoped content problems
// - Distinguish fatal mapping/structural errors from warn-level soft failures
//
// USAGE PATTERNS:
// - Create errors: use constructor functions like LayoutNotFound(), ConversionFailed()
// - Wrap errors: use Wrap() to add context to existing errors
// - Check types: use IsAppError() and GetAppError() for type-safe handling
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation   ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// Mapping errors
	ErrCodeTemplateNotFound      ErrorCode = "TEMPLATE_NOT_FOUND"
	ErrCodeLayoutNotFound        ErrorCode = "LAYOUT_NOT_FOUND"
	ErrCodePlaceholderUnresolved ErrorCode = "PLACEHOLDER_UNRESOLVED"

	// Conversion and pattern errors
	ErrCodeConversion     ErrorCode = "CONVERSION_ERROR"
	ErrCodePatternInvalid ErrorCode = "PATTERN_INVALID"

	// Generation errors
	ErrCodeGeneration ErrorCode = "GENERATION_ERROR"

	// Storage errors
	ErrCodeFileNotFound ErrorCode = "FILE_NOT_FOUND"
	ErrCodeStorage      ErrorCode = "STORAGE_FAILURE"

	// Internal errors
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryMapping    ErrorCategory = "mapping"
	CategoryConversion ErrorCategory = "conversion"
	CategoryGeneration ErrorCategory = "generation"
	CategoryStorage    ErrorCategory = "storage"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	appErr := NewAppError(code, message)
	appErr.Cause = err
	return appErr
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField:
		return CategoryValidation, SeverityError
	case ErrCodeTemplateNotFound, ErrCodeLayoutNotFound, ErrCodePlaceholderUnresolved:
		return CategoryMapping, SeverityError
	case ErrCodeConversion:
		return CategoryConversion, SeverityError
	case ErrCodePatternInvalid:
		return CategoryConversion, SeverityWarning
	case ErrCodeGeneration:
		return CategoryGeneration, SeverityError
	case ErrCodeFileNotFound, ErrCodeStorage:
		return CategoryStorage, SeverityError
	case ErrCodeInternal:
		return CategorySystem, SeverityCritical
	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternal, "Internal error occurred")
}

// Common error constructors for frequently used errors

func TemplateNotFound(name string, searched string) *AppError {
	return NewAppError(ErrCodeTemplateNotFound,
		fmt.Sprintf("template '%s' not found (searched %s). Fix: check the template name or set the template folder with --templates or DECKBUILDER_TEMPLATE_FOLDER", name, searched))
}

func ConversionFailed(section int, err error) *AppError {
	return Wrap(err, ErrCodeConversion,
		fmt.Sprintf("section %d could not be converted. Fix: check the YAML frontmatter delimiters and syntax in that section", section))
}

func GenerationFailed(err error) *AppError {
	return Wrap(err, ErrCodeGeneration, "presentation generation failed")
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternal, message)
}
