package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-hrms/internal/shared/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error passes through", func(t *testing.T) {
		err := apperror.New(apperror.CodeInvalidState, "Leave already reviewed", http.StatusConflict)

		got := apperror.ToHTTP(fmt.Errorf("review: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeInvalidState, got.Code)
		assert.Equal(t, "Leave already reviewed", got.Message)
	})

	t.Run("unique violation becomes conflict", func(t *testing.T) {
		err := &pgconn.PgError{Code: "23505", ConstraintName: "uq_payroll_employee_month",
			Message: `duplicate key value violates unique constraint "uq_payroll_employee_month"`}

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.NotContains(t, got.Message, "duplicate key")
	})

	t.Run("record not found becomes 404", func(t *testing.T) {
		got := apperror.ToHTTP(gorm.ErrRecordNotFound)
		assert.Equal(t, http.StatusNotFound, got.Status)
	})

	t.Run("unknown errors are redacted", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New(`pq: relation "payrolls" does not exist`))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "An unexpected error occurred", got.Message)
	})

	t.Run("wrapped internal app error is redacted", func(t *testing.T) {
		err := apperror.Wrap(errors.New("dial tcp 10.0.0.1:5432"), apperror.CodeInternalError, "db said: dial tcp", http.StatusInternalServerError)

		got := apperror.ToHTTP(err)

		assert.Equal(t, "An unexpected error occurred", got.Message)
	})

	t.Run("details are carried", func(t *testing.T) {
		err := apperror.WithDetails(apperror.ErrInvalidInput, []string{"row 1"})

		got := apperror.ToHTTP(err)

		assert.Equal(t, http.StatusBadRequest, got.Status)
		assert.Equal(t, []string{"row 1"}, got.Details)
	})
}

func TestUniqueConstraint(t *testing.T) {
	assert.Equal(t, "uq_x", apperror.UniqueConstraint(&pgconn.PgError{Code: "23505", ConstraintName: "uq_x"}))
	assert.Equal(t, "", apperror.UniqueConstraint(&pgconn.PgError{Code: "23503", ConstraintName: "fk_x"}))
	assert.False(t, apperror.IsUniqueViolation(errors.New("boom")))
}

func TestAppError_WithCause(t *testing.T) {
	cause := errors.New("connection refused")
	sentinel := apperror.New(apperror.CodeServiceUnavailable, "Upstream is down", http.StatusServiceUnavailable)
	other := apperror.New(apperror.CodeServiceUnavailable, "Upstream is down", http.StatusServiceUnavailable)

	err := sentinel.WithCause(cause)

	assert.ErrorIs(t, err, sentinel)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, other)
	assert.ErrorIs(t, err.WithCause(errors.New("again")), sentinel)
	assert.Equal(t, "Upstream is down: connection refused", err.Error())
	assert.Equal(t, http.StatusServiceUnavailable, apperror.ToHTTP(err).Status)
}
