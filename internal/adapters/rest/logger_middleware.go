package rest

import (
	"net/http"
	"time"

	"github.com/FloodCustomApp/greyrock-listings/internal/contextkeys"
	"github.com/FloodCustomApp/greyrock-listings/internal/core/port"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// NewLoggerMiddleware кладет логгер и trace id в контекст каждого запроса
// и пишет итоговую строку по завершении.
func NewLoggerMiddleware(logger port.LoggerPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID := r.Header.Get("x-trace-id")
			if traceID == "" {
				traceID = uuid.New().String()
			}

			requestLogger := logger.WithFields(port.Fields{
				"trace_id": traceID,
				"method":   r.Method,
				"path":     r.URL.Path,
			})

			ctx := contextkeys.ContextWithLogger(r.Context(), requestLogger)
			ctx = contextkeys.ContextWithTraceID(ctx, traceID)

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r.WithContext(ctx))

			requestLogger.Info("Request handled", port.Fields{
				"status":     ww.Status(),
				"bytes":      ww.BytesWritten(),
				"elapsed_ms": time.Since(start).Milliseconds(),
			})
		})
	}
}
