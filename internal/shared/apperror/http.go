package apperror

import (
	"errors"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// HTTPError is the client-facing projection of an error.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// DetailedError carries structured details alongside an AppError.
type DetailedError struct {
	*AppError
	Details any
}

func WithDetails(err *AppError, details any) *DetailedError {
	return &DetailedError{AppError: err, Details: details}
}

func (e *DetailedError) Unwrap() error {
	return e.AppError
}

// ToHTTP maps an error to status, code and message. Unknown errors are
// reported as a generic 500 so driver or query text never reaches clients.
func ToHTTP(err error) HTTPError {
	var detailed *DetailedError
	if errors.As(err, &detailed) {
		return HTTPError{
			Status:  detailed.HTTPStatus,
			Code:    detailed.Code,
			Message: detailed.Message,
			Details: detailed.Details,
		}
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPStatus >= http.StatusInternalServerError && appErr.Code == CodeInternalError {
			return HTTPError{Status: ErrInternal.HTTPStatus, Code: ErrInternal.Code, Message: ErrInternal.Message}
		}
		return HTTPError{Status: appErr.HTTPStatus, Code: appErr.Code, Message: appErr.Message}
	}

	if IsUniqueViolation(err) {
		return HTTPError{Status: ErrConflict.HTTPStatus, Code: ErrConflict.Code, Message: ErrConflict.Message}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return HTTPError{Status: ErrNotFound.HTTPStatus, Code: ErrNotFound.Code, Message: ErrNotFound.Message}
	}

	return HTTPError{Status: ErrInternal.HTTPStatus, Code: ErrInternal.Code, Message: ErrInternal.Message}
}

// IsUniqueViolation reports whether err is a Postgres unique_violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// UniqueConstraint returns the violated constraint name, or "" when err is
// not a unique violation.
func UniqueConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return pgErr.ConstraintName
	}
	return ""
}
