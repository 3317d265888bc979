package payrollerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"invalid month format, expected YYYY-MM",
		http.StatusBadRequest,
	)
	ErrInvalidEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"invalid or inactive employee",
		http.StatusBadRequest,
	)
	ErrInvalidMoneyValue = apperror.New(
		apperror.CodeInvalidInput,
		"overtime and holiday values must be finite and not negative",
		http.StatusBadRequest,
	)
	ErrInvalidAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"each adjustment needs a label and a finite amount",
		http.StatusBadRequest,
	)
	ErrPayrollExists = apperror.New(
		apperror.CodeConflict,
		"payroll already generated for this month",
		http.StatusConflict,
	)
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)
	ErrMonthRequired = apperror.New(
		apperror.CodeInvalidInput,
		"month is required",
		http.StatusBadRequest,
	)
)
