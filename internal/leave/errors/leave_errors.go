package leaveerrors

import (
	"net/http"

	"leavehr/internal/shared/apperror"
)

var (
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave request not found",
		http.StatusNotFound,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"end date must not precede start date",
		http.StatusBadRequest,
	)
	ErrHalfDaySpansDays = apperror.New(
		apperror.CodeInvalidInput,
		"half-day requests must start and end on the same day",
		http.StatusBadRequest,
	)
	ErrInvalidTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave request cannot change to the requested status",
		http.StatusConflict,
	)
	ErrNothingChargeable = apperror.New(
		apperror.CodeInvalidInput,
		"requested span contains no chargeable working days",
		http.StatusBadRequest,
	)
)
