package entityerrors

import (
	"net/http"

	"leavehr/internal/shared/apperror"
)

var (
	ErrEntityNotFound = apperror.New(
		apperror.CodeNotFound,
		"legal entity not found",
		http.StatusNotFound,
	)
	ErrInvalidEntityID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid entity id",
		http.StatusBadRequest,
	)
	ErrDuplicateEntityName = apperror.New(
		apperror.CodeConflict,
		"a legal entity with this name already exists",
		http.StatusConflict,
	)
)
