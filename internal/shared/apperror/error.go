package apperror

import "fmt"

type AppError struct {
	Code       string // e.g. INVALID_INPUT
	Message    string // safe to show to clients
	HTTPStatus int
	Err        error // optional cause, never shown to clients

	sentinel *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel a WithCause copy was made from, so
// errors.Is(sentinel.WithCause(err), sentinel) holds.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && e.sentinel != nil && e.sentinel == t
}

// WithCause returns a copy of e carrying err for logs.
func (e *AppError) WithCause(err error) *AppError {
	root := e
	if e.sentinel != nil {
		root = e.sentinel
	}
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		HTTPStatus: e.HTTPStatus,
		Err:        err,
		sentinel:   root,
	}
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap builds a one-off AppError around err. A nil err yields nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}
