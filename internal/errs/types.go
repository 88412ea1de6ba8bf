package errs

import (
	"net/http"
)

// New creates an HTTPError with the code derived from the status text.
func New(status int, message string) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(status)),
		Message: message,
		Status:  status,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
//   - code: optional custom code string (nil defaults to "BAD_REQUEST")
//   - errors: optional field errors
func NewBadRequestError(message string, code *string, errors []FieldError) *HTTPError {
	err := New(http.StatusBadRequest, message)
	if code != nil {
		err.Code = *code
	}
	err.Errors = errors
	return err
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, code *string) *HTTPError {
	err := New(http.StatusNotFound, message)
	if code != nil {
		err.Code = *code
	}
	return err
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is the generic status text, never the underlying error.
func NewInternalServerError() *HTTPError {
	return New(http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
}
