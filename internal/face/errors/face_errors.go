package faceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidImageCount = apperror.New(
		apperror.CodeInvalidInput,
		"Provide either 1 or 3 face images",
		http.StatusBadRequest,
	)
	ErrImageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Image is required",
		http.StatusBadRequest,
	)
	ErrFaceRejected = apperror.New(
		apperror.CodeInvalidInput,
		"Face image was rejected by the recognition service",
		http.StatusBadRequest,
	)
	ErrServiceUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"Face recognition service is unavailable",
		http.StatusServiceUnavailable,
	)
)
