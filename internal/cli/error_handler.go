package cli

import (
	stderrors "errors"

	"go.uber.org/zap"

	"assignment-tracker/internal/errors"
	"assignment-tracker/internal/validation"
)

// ErrorHandler turns service errors into the message shown to the user.
type ErrorHandler struct {
	logger *zap.Logger
}

// NewErrorHandler creates a new error handler. A nil logger disables logging.
func NewErrorHandler(logger *zap.Logger) *ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ErrorHandler{logger: logger}
}

// HandleSimple logs system faults and rewrites known errors to their user message.
func (eh *ErrorHandler) HandleSimple(err error) error {
	if err == nil {
		return nil
	}
	if errors.ShouldLogError(err) {
		eh.logger.Error("command failed",
			zap.String("code", errors.GetErrorCode(err)),
			zap.Error(err))
	}

	if _, ok := errors.AsAppError(err); ok {
		return stderrors.New(errors.GetUserMessage(err))
	}
	if ve, ok := validation.AsValidationError(err); ok {
		return stderrors.New(ve.UserMessage())
	}
	return err
}
