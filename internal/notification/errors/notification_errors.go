package notificationerrors

import (
	"net/http"

	"go-hrms/internal/shared/apperror"
)

var (
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
	ErrInvalidRecipientEmail = apperror.New(
		apperror.CodeInvalidInput,
		"recipient email is missing or malformed",
		http.StatusBadRequest,
	)
	ErrMissingRecipientName = apperror.New(
		apperror.CodeInvalidInput,
		"recipient name is required",
		http.StatusBadRequest,
	)
	ErrMissingType = apperror.New(
		apperror.CodeInvalidInput,
		"notification type is required",
		http.StatusBadRequest,
	)
	ErrMissingSubject = apperror.New(
		apperror.CodeInvalidInput,
		"subject is required",
		http.StatusBadRequest,
	)
	ErrMissingMessage = apperror.New(
		apperror.CodeInvalidInput,
		"message is required",
		http.StatusBadRequest,
	)
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrNotFailed = apperror.New(
		apperror.CodeInvalidState,
		"only failed notifications can be reset for retry",
		http.StatusBadRequest,
	)
)
