package codec

import (
	"github.com/dharitri/dharitri-wasm-go/errors"
)

// ErrorHandler turns a codec failure into the error returned to the caller.
type ErrorHandler interface {
	HandleError(err *errors.Error) error
}

// DefaultErrorHandler returns the structured error unchanged, leaving the
// caller free to recover.
type DefaultErrorHandler struct{}

// HandleError returns err.
func (DefaultErrorHandler) HandleError(err *errors.Error) error {
	return err
}

// ExitErrorHandler converts codec failures into call aborts with a formatted
// diagnostic: Prefix followed by the failure message.
type ExitErrorHandler struct {
	Prefix string
	// Status defaults to errors.UserError when zero.
	Status errors.ReturnCode
}

// Exit returns an ExitErrorHandler with the given message prefix.
func Exit(prefix string) ExitErrorHandler {
	return ExitErrorHandler{Prefix: prefix}
}

// HandleError returns an *errors.Abort.
func (h ExitErrorHandler) HandleError(err *errors.Error) error {
	status := h.Status
	if status == errors.Ok {
		status = errors.UserError
	}
	return errors.NewAbort(status, h.Prefix+err.Message())
}
