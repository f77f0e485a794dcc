package errors

import (
	"errors"
	"fmt"
)

// newError builds an AppError with the default code for t. details are
// alternating keys and values.
func newError(t ErrorType, cause error, message string, details ...any) *AppError {
	e := &AppError{
		Type:    t,
		Message: message,
		Code:    kinds[t].code,
		Cause:   cause,
		Details: make(map[string]any, len(details)/2),
	}
	for i := 0; i+1 < len(details); i += 2 {
		e.Details[fmt.Sprint(details[i])] = details[i+1]
	}
	return e
}

// NewValidationError reports input that failed validation. cause is usually
// a *validation.ValidationError carrying the field errors.
func NewValidationError(message string, cause error) *AppError {
	return newError(ErrorTypeValidation, cause, message)
}

// NewNotFoundError reports a missing resource
func NewNotFoundError(resource string, identifier string) *AppError {
	return newError(ErrorTypeNotFound, nil,
		fmt.Sprintf("%s not found: %s", resource, identifier),
		"resource", resource, "identifier", identifier)
}

// NewDatabaseError reports a failed storage operation
func NewDatabaseError(operation string, cause error) *AppError {
	return newError(ErrorTypeDatabase, cause,
		fmt.Sprintf("storage operation failed: %s", operation),
		"operation", operation)
}

// NewInvalidInputError reports an argument that cannot be used
func NewInvalidInputError(field string, value any, reason string) *AppError {
	return newError(ErrorTypeInvalidInput, nil,
		fmt.Sprintf("invalid input for %s: %s", field, reason),
		"field", field, "value", value, "reason", reason)
}

// NewTimeoutError reports an operation cut short by its deadline
func NewTimeoutError(operation string, timeout any) *AppError {
	return newError(ErrorTypeTimeout, nil,
		fmt.Sprintf("operation timed out: %s", operation),
		"operation", operation, "timeout", timeout)
}

// NewDeserializationError reports persisted data under key that could not be decoded
func NewDeserializationError(key string, cause error) *AppError {
	return newError(ErrorTypeDeserialization, cause,
		fmt.Sprintf("stored value is malformed: %s", key),
		"key", key)
}

// WrapError gives err a type and message
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return newError(errorType, err, message)
}

// IsAppError reports whether err is, or wraps, an AppError
func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType reports whether err wraps an AppError of errorType
func IsErrorType(err error, errorType ErrorType) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.IsType(errorType)
}

// GetUserMessage returns text fit for the terminal. Input errors keep their
// own message; system errors get a generic one.
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.userFacing()
	}
	return err.Error()
}

// GetErrorCode returns the AppError code or UNKNOWN_ERROR
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError is false for errors caused by user input
func ShouldLogError(err error) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return true
	}
	return !kinds[appErr.Type].userFault
}
