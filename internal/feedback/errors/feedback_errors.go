package feedbackerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrMessageRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Message is required",
		http.StatusBadRequest,
	)
	ErrReviewRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Review is required",
		http.StatusBadRequest,
	)
	ErrInvalidRating = apperror.New(
		apperror.CodeInvalidInput,
		"Rating must be between 1 and 5",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found or inactive",
		http.StatusNotFound,
	)
)
