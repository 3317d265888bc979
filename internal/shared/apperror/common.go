package apperror

import "net/http"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	// ErrInternal is the only message a client ever sees for a 5xx.
	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)

	ErrConflict = New(
		CodeConflict,
		"Resource already exists",
		http.StatusConflict,
	)

	ErrServiceUnavailable = New(
		CodeServiceUnavailable,
		"A dependent service is unavailable",
		http.StatusServiceUnavailable,
	)
)

func RequiredField(field string) *AppError { return invalidInput("%s is required", field) }

func InvalidField(field string) *AppError { return invalidInput("%s is invalid", field) }
