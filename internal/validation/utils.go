package validation

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/deppfellow/cosmic-api/internal/errs"
)

// ValidationFailedMessage is the summary message of every 400 produced here.
const ValidationFailedMessage = "Validation failed"

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that calls validation.Struct(req)
type Validatable interface {
	Validate() error
}

// CustomValidationError represents a single validation issue for a specific field.
// This is used for validation errors that cannot be expressed via validator tags.
type CustomValidationError struct {
	Field   string
	Message string
}

// CustomValidationErrors is a slice of custom validation errors that satisfies error.
type CustomValidationErrors []CustomValidationError

func (c CustomValidationErrors) Error() string {
	return ValidationFailedMessage
}

var validate = newValidator()

// newValidator reports field names by their json tag, so errors read
// "field_of_study is required" rather than "FieldOfStudy".
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"json", "param", "query"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name != "" && name != "-" {
				return name
			}
		}
		return field.Name
	})
	return v
}

// Struct runs the tag-based rules on s.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. c.Bind(payload) populates the struct from path params, query and body.
//  2. payload.Validate() applies validation rules.
//  3. Returns *errs.HTTPError (400) with field-level errors if either fails.
//
// payload must be a pointer to a struct.
func BindAndValidate(c echo.Context, payload Validatable) error {
	if err := c.Bind(payload); err != nil {
		return bindError(err)
	}

	if fieldErrors := validateStruct(payload); fieldErrors != nil {
		return errs.NewBadRequestError(ValidationFailedMessage, nil, fieldErrors)
	}

	return nil
}

// bindError turns an echo bind failure into a 400. Echo reports malformed
// JSON, type mismatches and unparsable params as *echo.HTTPError.
func bindError(err error) *errs.HTTPError {
	var he *echo.HTTPError
	if !errors.As(err, &he) {
		return errs.NewBadRequestError("Invalid request", nil, nil)
	}

	msg, _ := he.Message.(string)
	switch {
	case strings.HasPrefix(msg, "Unmarshal type error"):
		if field, ok := unmarshalField(msg); ok {
			return errs.NewBadRequestError(ValidationFailedMessage, nil, []errs.FieldError{{
				Field: field,
				Error: "has an invalid type",
			}})
		}
		return errs.NewBadRequestError("Invalid request body", nil, nil)

	case strings.HasPrefix(msg, "Syntax error"):
		return errs.NewBadRequestError("Malformed JSON body", nil, nil)

	case strings.HasPrefix(msg, "strconv."):
		return errs.NewBadRequestError("Invalid path or query parameter", nil, nil)

	case msg != "" && he.Code != http.StatusBadRequest:
		// e.g. 415 for a body without a JSON content type
		return errs.New(he.Code, msg)

	case msg != "":
		return errs.NewBadRequestError(msg, nil, nil)

	default:
		return errs.NewBadRequestError("Invalid request", nil, nil)
	}
}

// unmarshalField extracts the field from echo's
// "Unmarshal type error: expected=int64, got=string, field=planet_id, offset=42".
func unmarshalField(msg string) (string, bool) {
	for _, part := range strings.Split(msg, ", ") {
		if field, ok := strings.CutPrefix(part, "field="); ok && field != "" {
			return field, true
		}
	}
	return "", false
}

// validateStruct calls v.Validate() and extracts field errors if validation fails.
func validateStruct(v Validatable) []errs.FieldError {
	if err := v.Validate(); err != nil {
		return extractValidationError(err)
	}
	return nil
}

func extractValidationError(err error) []errs.FieldError {
	var fieldErrors []errs.FieldError

	var customErrors CustomValidationErrors
	if errors.As(err, &customErrors) {
		for _, ce := range customErrors {
			fieldErrors = append(fieldErrors, errs.FieldError{
				Field: ce.Field,
				Error: ce.Message,
			})
		}
		return fieldErrors
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return []errs.FieldError{{Error: err.Error()}}
	}

	for _, fe := range validationErrors {
		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: fe.Field(),
			Error: fieldMessage(fe),
		})
	}

	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"

	case "min":
		// strings: length, numbers: value
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())

	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())

	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())

	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())

	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
