package errs

import (
	"net/http"
	"strings"
)

// FieldError represents a field-level validation error.
//
//	{ "field": "field_of_study", "error": "is required" }
type FieldError struct {
	// Field is the JSON name of the offending field.
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// String renders the error the way it appears in an "errors" list.
func (f FieldError) String() string {
	if f.Field == "" {
		return f.Error
	}
	return f.Field + " " + f.Error
}

// HTTPError is the main custom error type for API responses.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "BAD_REQUEST"), used in logs.
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Errors: per-field errors (validation).
type HTTPError struct {
	Code    string
	Message string
	Status  int
	Errors  []FieldError
}

// NotFoundBody is the response body for 404 errors.
type NotFoundBody struct {
	Error string `json:"error"`
}

// ErrorsBody is the response body for every other error status.
type ErrorsBody struct {
	Errors []string `json:"errors"`
}

// Error makes *HTTPError satisfy the built-in `error` interface.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError. It does not compare
// codes or statuses.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)
	return ok
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:    e.Code,
		Message: message,
		Status:  e.Status,
		Errors:  e.Errors,
	}
}

// Messages lists the messages reported to the client. Field errors take
// precedence over the summary message.
func (e *HTTPError) Messages() []string {
	if len(e.Errors) == 0 {
		return []string{e.Message}
	}

	messages := make([]string, 0, len(e.Errors))
	for _, fieldErr := range e.Errors {
		messages = append(messages, fieldErr.String())
	}
	return messages
}

// Body returns the JSON body written for this error.
func (e *HTTPError) Body() any {
	if e.Status == http.StatusNotFound {
		return NotFoundBody{Error: e.Message}
	}
	return ErrorsBody{Errors: e.Messages()}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
