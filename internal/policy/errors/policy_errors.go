package policyerrors

import (
	"net/http"

	"leavehr/internal/shared/apperror"
)

var (
	ErrInvalidEntityID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entity id",
		http.StatusBadRequest,
	)
	ErrInvalidBucket = apperror.New(
		apperror.CodeInvalidInput,
		"bucket must be one of annual, personal, long_service",
		http.StatusBadRequest,
	)
	ErrPolicyNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave policy not found",
		http.StatusNotFound,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrActivePolicyExists = apperror.New(
		apperror.CodeConflict,
		"an active policy already exists for this entity and bucket",
		http.StatusConflict,
	)
)
