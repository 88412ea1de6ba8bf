package sqlerr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/cosmic-api/internal/errs"
)

func handle(t *testing.T, err error) *errs.HTTPError {
	t.Helper()
	var httpErr *errs.HTTPError
	require.ErrorAs(t, HandleError(err), &httpErr)
	return httpErr
}

func TestHandleErrorForeignKeyViolation(t *testing.T) {
	tests := []struct {
		constraint string
		message    string
		code       string
	}{
		{constraint: "missions_scientist_id_fkey", message: "The referenced Scientist does not exist", code: "SCIENTIST_NOT_FOUND"},
		{constraint: "missions_planet_id_fkey", message: "The referenced Planet does not exist", code: "PLANET_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.constraint, func(t *testing.T) {
			pgErr := &pgconn.PgError{
				Severity:       "ERROR",
				Code:           pgerrcode.ForeignKeyViolation,
				TableName:      "missions",
				ConstraintName: tt.constraint,
			}

			httpErr := handle(t, fmt.Errorf("inserting mission: %w", pgErr))

			assert.Equal(t, http.StatusBadRequest, httpErr.Status)
			assert.Equal(t, tt.message, httpErr.Message)
			assert.Equal(t, tt.code, httpErr.Code)
		})
	}
}

func TestHandleErrorNotNullViolation(t *testing.T) {
	httpErr := handle(t, &pgconn.PgError{
		Code:       pgerrcode.NotNullViolation,
		TableName:  "scientists",
		ColumnName: "field_of_study",
	})

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "SCIENTIST_REQUIRED", httpErr.Code)
	assert.Equal(t, []string{"field_of_study is required"}, httpErr.Messages())
}

func TestHandleErrorUniqueViolation(t *testing.T) {
	httpErr := handle(t, &pgconn.PgError{
		Code:           pgerrcode.UniqueViolation,
		TableName:      "planets",
		ConstraintName: "planets_name_key",
	})

	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Equal(t, "A Planet with this Name already exists", httpErr.Message)
}

func TestHandleErrorPassesHTTPErrorThrough(t *testing.T) {
	orig := errs.NewNotFoundError("Scientist not found", nil)

	assert.Same(t, orig, handle(t, orig))
}

func TestHandleErrorNoRows(t *testing.T) {
	httpErr := handle(t, fmt.Errorf("get: %w", pgx.ErrNoRows))

	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestHandleErrorUnknown(t *testing.T) {
	for _, err := range []error{
		errors.New("dial tcp: connection refused"),
		&pgconn.PgError{Code: pgerrcode.DeadlockDetected},
	} {
		httpErr := handle(t, err)

		assert.Equal(t, http.StatusInternalServerError, httpErr.Status)
		assert.Equal(t, "Internal Server Error", httpErr.Message)
	}
}

func TestErrCode(t *testing.T) {
	converted := ConvertPgError(&pgconn.PgError{Code: pgerrcode.CheckViolation, Severity: "ERROR"})

	assert.Equal(t, CheckViolation, ErrCode(fmt.Errorf("wrapped: %w", converted)))
	assert.Equal(t, Other, ErrCode(errors.New("plain")))
	assert.Equal(t, SeverityError, converted.Severity)
}

func TestExtractColumnForForeignKeyViolation(t *testing.T) {
	assert.Equal(t, "scientist_id", extractColumnForForeignKeyViolation("missions", "missions_scientist_id_fkey"))
	assert.Equal(t, "", extractColumnForForeignKeyViolation("missions", "custom_constraint"))
}
