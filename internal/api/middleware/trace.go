package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/directions-api/internal/api/shared"
	"github.com/phrazzld/directions-api/internal/platform/logger"
)

// NewTraceMiddleware assigns every request a trace ID, echoes it in the
// X-Trace-ID response header and stores a request-scoped logger carrying
// the ID in the context. It should run early in the chain so that handlers
// and services log with the trace ID attached.
func NewTraceMiddleware(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		panic("logger cannot be nil for TraceMiddleware") // ALLOW-PANIC: constructor enforcing required dependency
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			reqLog := log.With(slog.String("trace_id", traceID))
			if reqID := chimiddleware.GetReqID(ctx); reqID != "" {
				reqLog = reqLog.With(slog.String("request_id", reqID))
			}
			ctx = logger.WithLogger(ctx, reqLog)

			w.Header().Set(shared.TraceIDHeader, traceID)

			reqLog.DebugContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(ctx))

			reqLog.InfoContext(ctx, "request completed",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)))
		})
	}
}
