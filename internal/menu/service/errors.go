package service

import (
	"net/http"

	commonerrors "github.com/teamnine/humanofdelivery/backend/internal/common/errors"
)

var (
	ErrMenuNotFound = commonerrors.NewDomainError(
		"MENU_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"menu not found",
	)

	ErrMenuNotAvailable = commonerrors.NewDomainError(
		"MENU_NOT_AVAILABLE",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"menu is not available",
	)

	ErrInvalidMenuStatus = commonerrors.NewDomainError(
		"INVALID_MENU_STATUS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid menu status",
	)
)
