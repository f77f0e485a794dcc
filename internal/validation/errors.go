package validation

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Rule names the check a field failed
type Rule string

const (
	RuleRequired Rule = "required"
	RuleFormat   Rule = "format"
	RuleLength   Rule = "length"
	RuleValue    Rule = "value"
	RuleRange    Rule = "range"
)

// FieldError is one failed check. Message is complete and already names the field.
type FieldError struct {
	Field   string
	Rule    Rule
	Message string
	Value   any
}

func (fe *FieldError) Error() string {
	return fmt.Sprintf("invalid %s: %s", fe.Field, fe.Message)
}

// ValidationError collects every failed check for one input, in the order
// the checks ran.
type ValidationError struct {
	Errors []FieldError
}

// NewValidationError returns an empty collection ready for the helpers below
func NewValidationError() *ValidationError {
	return &ValidationError{Errors: []FieldError{}}
}

func (ve *ValidationError) Error() string {
	switch len(ve.Errors) {
	case 0:
		return "validation failed"
	case 1:
		return ve.Errors[0].Error()
	}
	parts := make([]string, len(ve.Errors))
	for i := range ve.Errors {
		parts[i] = ve.Errors[i].Error()
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidationError finds the ValidationError in err's chain
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}

// HasErrors reports whether any check failed
func (ve *ValidationError) HasErrors() bool {
	return len(ve.Errors) > 0
}

func (ve *ValidationError) add(field string, rule Rule, value any, format string, args ...any) {
	ve.Errors = append(ve.Errors, FieldError{
		Field:   field,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
		Value:   value,
	})
}

// Required records a missing field
func (ve *ValidationError) Required(field string) {
	ve.add(field, RuleRequired, nil, "%s is required", field)
}

// BadFormat records a value that does not match layout
func (ve *ValidationError) BadFormat(field string, value any, layout string) {
	ve.add(field, RuleFormat, value, "%s has invalid format, expected: %s", field, layout)
}

// BadLength records a string outside [min, max] characters. A zero bound is
// left out of the message.
func (ve *ValidationError) BadLength(field string, value any, min, max int) {
	switch {
	case min > 0 && max > 0:
		ve.add(field, RuleLength, value, "%s must be between %d and %d characters long", field, min, max)
	case min > 0:
		ve.add(field, RuleLength, value, "%s must be at least %d characters long", field, min)
	case max > 0:
		ve.add(field, RuleLength, value, "%s must be at most %d characters long", field, max)
	default:
		ve.add(field, RuleLength, value, "%s has invalid length", field)
	}
}

// BadValue records a value outside an allowed set
func (ve *ValidationError) BadValue(field string, value any, reason string) {
	ve.add(field, RuleValue, value, "%s has invalid value: %s", field, reason)
}

// OutOfRange records a number outside its bounds
func (ve *ValidationError) OutOfRange(field string, value any, reason string) {
	ve.add(field, RuleRange, value, "%s is out of range: %s", field, reason)
}

// For returns the failures recorded against field
func (ve *ValidationError) For(field string) []FieldError {
	var matched []FieldError
	for _, fe := range ve.Errors {
		if fe.Field == field {
			matched = append(matched, fe)
		}
	}
	return matched
}

// Fields returns the names of the fields that failed, in order, without repeats
func (ve *ValidationError) Fields() []string {
	var fields []string
	for _, fe := range ve.Errors {
		if !slices.Contains(fields, fe.Field) {
			fields = append(fields, fe.Field)
		}
	}
	return fields
}

// UserMessage is the text shown on the terminal: the single message, or a
// bulleted list when several checks failed.
func (ve *ValidationError) UserMessage() string {
	switch len(ve.Errors) {
	case 0:
		return "Input validation failed"
	case 1:
		return ve.Errors[0].Message
	}
	var b strings.Builder
	b.WriteString("Multiple validation errors occurred:")
	for _, fe := range ve.Errors {
		b.WriteString("\n- ")
		b.WriteString(fe.Message)
	}
	return b.String()
}
