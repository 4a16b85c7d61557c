// Package middleware holds HTTP middleware shared by all API routes.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordbank/internal/api/shared"
	"github.com/phrazzld/wordbank/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that tags every request with a
// trace ID. The ID is echoed in the X-Trace-ID response header and a
// logger carrying it is stored in the request context.
//
// Apply it early in the chain so later handlers see the trace ID.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
