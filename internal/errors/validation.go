package errors

import (
	"fmt"
	"strings"
)

// ValidationError reports a content or mapping problem found during one of
// the validation stages. SlideNum is 1-based and zero when the problem is
// not slide-specific. The message always ends with a "Fix:" suggestion.
type ValidationError struct {
	Message  string
	SlideNum int
	Field    string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var prefix string
	switch {
	case e.SlideNum > 0 && e.Field != "":
		prefix = fmt.Sprintf("slide %d, field '%s': ", e.SlideNum, e.Field)
	case e.SlideNum > 0:
		prefix = fmt.Sprintf("slide %d: ", e.SlideNum)
	case e.Field != "":
		prefix = fmt.Sprintf("field '%s': ", e.Field)
	}
	return prefix + e.Message
}

// NewValidationError builds a ValidationError, appending the Fix suggestion
// to the message.
func NewValidationError(message, fix string) *ValidationError {
	if fix != "" {
		message = message + ". Fix: " + fix
	}
	return &ValidationError{Message: message}
}

// ForSlide scopes the error to a 1-based slide number.
func (e *ValidationError) ForSlide(num int) *ValidationError {
	e.SlideNum = num
	return e
}

// ForField scopes the error to a placeholder field name.
func (e *ValidationError) ForField(field string) *ValidationError {
	e.Field = field
	return e
}

// AggregateValidationErrors combines the discrepancies from a whole
// validation run into a single error, so one run reports every problem at
// once instead of failing on the first.
func AggregateValidationErrors(stage string, errs []*ValidationError) *ValidationError {
	if len(errs) == 0 {
		return nil
	}
	if len(errs) == 1 {
		return errs[0]
	}
	lines := make([]string, len(errs))
	for i, err := range errs {
		lines[i] = "  - " + err.Error()
	}
	return &ValidationError{
		Message: fmt.Sprintf("%s validation found %d problems:\n%s", stage, len(errs), strings.Join(lines, "\n")),
	}
}
