package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/teamnine/humanofdelivery/backend/internal/common/constants"
)

// TraceIDMiddleware attaches a trace id to each request, reusing the
// caller-provided X-Trace-ID header when present.
func TraceIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Trace-ID")
		if traceID == "" {
			traceID = uuid.NewString()
		}

		ctx := context.WithValue(r.Context(), constants.TraceIDKey, traceID)
		w.Header().Set("X-Trace-ID", traceID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
