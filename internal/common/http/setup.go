package http

import (
	"net/http"

	"github.com/teamnine/humanofdelivery/backend/internal/common/constants"
	"github.com/teamnine/humanofdelivery/backend/internal/common/httpmetrics"
	"github.com/teamnine/humanofdelivery/backend/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return recovery(TraceIDMiddleware(maxRequestSize(httpmetrics.Wrap(handler))))
}
