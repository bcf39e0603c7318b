package employeeerrors

import (
	"net/http"

	"leavehr/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrEmployeeAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee with the same email already exists",
		http.StatusConflict,
	)
	ErrEmployeeNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"employee number already exists in this entity",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee ID",
		http.StatusBadRequest,
	)
	ErrInvalidEmploymentType = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employment type",
		http.StatusBadRequest,
	)
	ErrEmployeeTerminated = apperror.New(
		apperror.CodeInvalidState,
		"employee is terminated",
		http.StatusConflict,
	)
	ErrUnknownReference = apperror.New(
		apperror.CodeInvalidInput,
		"referenced department or manager does not exist",
		http.StatusBadRequest,
	)
)
