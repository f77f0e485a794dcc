package errors

import (
	"fmt"
	"strings"
)

// ErrorType represents the category of error
type ErrorType int

const (
	ErrorTypeValidation ErrorType = iota
	ErrorTypeNotFound
	ErrorTypeDatabase
	ErrorTypeInvalidInput
	ErrorTypeTimeout
	ErrorTypeDeserialization
)

// kind is what the package knows about one ErrorType. Errors caused by user
// input show their own message; the rest show userMessage and get logged.
type kind struct {
	name        string
	code        string
	userFault   bool
	userMessage string
}

const unexpectedMessage = "An unexpected error occurred. Please try again."

var kinds = map[ErrorType]kind{
	ErrorTypeValidation:   {name: "validation", code: "VALIDATION_FAILED", userFault: true},
	ErrorTypeNotFound:     {name: "not_found", code: "NOT_FOUND", userFault: true},
	ErrorTypeInvalidInput: {name: "invalid_input", code: "INVALID_INPUT", userFault: true},
	ErrorTypeDatabase: {
		name:        "database",
		code:        "DATABASE_ERROR",
		userMessage: "A storage error occurred. Please try again.",
	},
	ErrorTypeTimeout: {
		name:        "timeout",
		code:        "TIMEOUT",
		userMessage: "The operation timed out. Please try again.",
	},
	ErrorTypeDeserialization: {
		name:        "deserialization",
		code:        "DESERIALIZATION_FAILED",
		userMessage: "Saved assignments could not be read.",
	},
}

// String returns the snake_case name of the type, or "unknown"
func (et ErrorType) String() string {
	if k, ok := kinds[et]; ok {
		return k.name
	}
	return "unknown"
}

// AppError is the structured error passed between layers. Details holds
// machine-readable facts such as the offending field or key.
type AppError struct {
	Type    ErrorType
	Message string
	Code    string
	Cause   error
	Details map[string]any
}

// Error renders "<type>: <message>" plus the cause when there is one
func (e *AppError) Error() string {
	var b strings.Builder
	b.WriteString(e.Type.String())
	b.WriteString(": ")
	b.WriteString(e.Message)
	if e.Cause != nil {
		fmt.Fprintf(&b, " (caused by: %v)", e.Cause)
	}
	return b.String()
}

// Unwrap exposes the cause to errors.Is and errors.As
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches another AppError with the same type and code
func (e *AppError) Is(target error) bool {
	other, ok := target.(*AppError)
	return ok && e.Type == other.Type && e.Code == other.Code
}

// IsType reports whether e has the given type
func (e *AppError) IsType(errorType ErrorType) bool {
	return e.Type == errorType
}

// WithDetail records a fact about the error and returns e
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Detail returns a recorded fact
func (e *AppError) Detail(key string) (any, bool) {
	value, ok := e.Details[key]
	return value, ok
}

// userFacing returns the text that is safe to print for e
func (e *AppError) userFacing() string {
	k, ok := kinds[e.Type]
	switch {
	case !ok:
		return unexpectedMessage
	case k.userFault:
		return e.Message
	default:
		return k.userMessage
	}
}
