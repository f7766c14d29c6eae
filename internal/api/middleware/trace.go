package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/productgen/internal/api/shared"
	"github.com/phrazzld/productgen/internal/platform/logger"
)

// Trace assigns every request a trace ID, echoes it in the response header,
// and stores a request-scoped logger carrying it in the context. The trace
// ID doubles as the generation id in pipeline logs.
func Trace(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context(), r.Header.Get(shared.TraceIDHeader))
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)
			ctx = logger.WithRequestID(ctx, traceID)

			w.Header().Set(shared.TraceIDHeader, traceID)

			log.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
