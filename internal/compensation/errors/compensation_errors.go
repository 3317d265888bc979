package compensationerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrAssignmentsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"assignments are required",
		http.StatusBadRequest,
	)
	ErrNoValidAssignments = apperror.New(
		apperror.CodeInvalidInput,
		"no valid assignments provided",
		http.StatusBadRequest,
	)
	ErrInvalidRevisionValue = apperror.New(
		apperror.CodeInvalidInput,
		"invalid revision value",
		http.StatusBadRequest,
	)
	ErrInvalidRevisionMode = apperror.New(
		apperror.CodeInvalidInput,
		"mode must be percent or fixed",
		http.StatusBadRequest,
	)
	ErrNoEmployeesInScope = apperror.New(
		apperror.CodeInvalidInput,
		"no employees found for revision",
		http.StatusBadRequest,
	)
)
