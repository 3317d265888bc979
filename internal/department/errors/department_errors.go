package departmenterrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrDepartmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"Department not found",
		http.StatusNotFound,
	)
	ErrDepartmentNameExists = apperror.New(
		apperror.CodeConflict,
		"Department name already exists",
		http.StatusConflict,
	)
	ErrDepartmentCodeExists = apperror.New(
		apperror.CodeConflict,
		"Department code already exists",
		http.StatusConflict,
	)
	ErrDepartmentHasEmployees = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot deactivate department with assigned employees",
		http.StatusBadRequest,
	)
	ErrInvalidDepartmentID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid department ID",
		http.StatusBadRequest,
	)
)
