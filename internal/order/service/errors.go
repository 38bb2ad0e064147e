package service

import (
	"net/http"

	commonerrors "github.com/teamnine/humanofdelivery/backend/internal/common/errors"
)

var (
	ErrOrderNotFound = commonerrors.NewDomainError(
		"ORDER_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"order not found",
	)

	ErrInvalidOrderStatus = commonerrors.NewDomainError(
		"INVALID_ORDER_STATUS",
		commonerrors.CategoryValidation,
		http.StatusBadRequest,
		"invalid order status transition",
	)
)
