package service

import (
	"net/http"

	commonerrors "github.com/teamnine/humanofdelivery/backend/internal/common/errors"
)

var (
	ErrStoreNotFound = commonerrors.NewDomainError(
		"STORE_NOT_FOUND",
		commonerrors.CategoryNotFound,
		http.StatusNotFound,
		"store not found",
	)

	ErrStoreClosed = commonerrors.NewDomainError(
		"STORE_CLOSED",
		commonerrors.CategoryConflict,
		http.StatusConflict,
		"store is closed",
	)
)
