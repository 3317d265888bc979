package designationerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrDesignationNotFound = apperror.New(
		apperror.CodeNotFound,
		"Designation not found",
		http.StatusNotFound,
	)
	ErrDesignationExists = apperror.New(
		apperror.CodeConflict,
		"Designation title already exists in this department",
		http.StatusConflict,
	)
	ErrDepartmentInactive = apperror.New(
		apperror.CodeInvalidInput,
		"Department not found or inactive",
		http.StatusBadRequest,
	)
	ErrDesignationInUse = apperror.New(
		apperror.CodeInvalidInput,
		"Cannot deactivate designation held by active employees",
		http.StatusBadRequest,
	)
	ErrInvalidBaseSalary = apperror.New(
		apperror.CodeInvalidInput,
		"Base salary must be a non-negative number",
		http.StatusBadRequest,
	)
	ErrInvalidDesignationID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid designation ID",
		http.StatusBadRequest,
	)
)
