package salaryerrors

import (
	"net/http"

	"leavehr/internal/shared/apperror"
)

var (
	ErrSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary record not found",
		http.StatusNotFound,
	)
	ErrSalaryAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"salary record already exists for this effective date",
		http.StatusConflict,
	)
	ErrNoApplicableRate = apperror.New(
		apperror.CodeNotFound,
		"no applicable hourly rate for employee",
		http.StatusNotFound,
	)
)
