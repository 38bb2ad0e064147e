package service

import (
	"net/http"

	commonerrors "github.com/teamnine/humanofdelivery/backend/internal/common/errors"
)

var (
	ErrEmailDuplicate = commonerrors.NewDomainError(
		"EMAIL_DUPLICATE",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"email already registered",
	)

	ErrUserNotFound = commonerrors.NewDomainError(
		"USER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"user not found",
	)

	ErrPasswordIncorrect = commonerrors.NewDomainError(
		"PASSWORD_INCORRECT",
		commonerrors.CategoryUnauthorized,
		http.StatusUnauthorized,
		"password incorrect",
	)

	ErrPermissionDenied = commonerrors.NewDomainError(
		"PERMISSION_DENIED",
		commonerrors.CategoryAuth,
		http.StatusForbidden,
		"permission denied",
	)

	ErrUserDeactivated = commonerrors.NewDomainError(
		"USER_DEACTIVATED",
		commonerrors.CategoryAuth,
		http.StatusForbidden,
		"user already deactivated",
	)
)
