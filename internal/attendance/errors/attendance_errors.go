package attendanceerrors

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
	ErrInvalidAttendanceID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance id",
		http.StatusBadRequest,
	)
	ErrInvalidAttendanceType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid attendance type",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"check_out_time must not be before check_in_time",
		http.StatusBadRequest,
	)
	ErrInvalidSummaryPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"year must be 2000-2100 and month 1-12",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedIn = apperror.New(
		apperror.CodeConflict,
		"employee already checked in today",
		http.StatusConflict,
	)
	ErrNotCheckedIn = apperror.New(
		apperror.CodeInvalidState,
		"no open check-in found for today",
		http.StatusBadRequest,
	)
	ErrAlreadyCheckedOut = apperror.New(
		apperror.CodeInvalidState,
		"employee already checked out today",
		http.StatusBadRequest,
	)
	ErrAttendanceNotFound = apperror.New(
		apperror.CodeNotFound,
		"attendance record not found",
		http.StatusNotFound,
	)
)
