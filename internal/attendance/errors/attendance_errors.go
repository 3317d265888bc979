package attendanceerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid or inactive employee",
		http.StatusBadRequest,
	)
	ErrAttendanceExists = apperror.New(
		apperror.CodeConflict,
		"Attendance already marked for this employee on this date",
		http.StatusConflict,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"check_out_time must not be before check_in_time",
		http.StatusBadRequest,
	)
	ErrInvalidOvertime = apperror.New(
		apperror.CodeInvalidInput,
		"overtime_hours must be a non-negative number",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"date must be in YYYY-MM-DD format",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"month must be in YYYY-MM format",
		http.StatusBadRequest,
	)
	ErrSummaryParamsRequired = apperror.New(
		apperror.CodeInvalidInput,
		"employee_id and month are required",
		http.StatusBadRequest,
	)
	ErrFaceNotRecognized = apperror.New(
		apperror.CodeNotFound,
		"Face not recognized",
		http.StatusNotFound,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeConflict,
		"Attendance already completed for today",
		http.StatusConflict,
	)
)
