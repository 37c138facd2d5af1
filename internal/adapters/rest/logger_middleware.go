package rest

import (
	"net/http"
	"time"
	"tool-catalog-service/internal/contextkeys"
	"tool-catalog-service/internal/core/port"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

const traceIDHeader = "X-Trace-ID"

// LoggerMiddleware кладет в контекст логгер с trace_id и пишет итог запроса.
// Входящий X-Trace-ID принимается, только если это UUID.
func LoggerMiddleware(logger port.LoggerPort) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			traceID, inherited := requestTraceID(r)

			coreLogger := logger.WithFields(port.Fields{"trace_id": traceID})
			httpLogger := coreLogger.WithFields(port.Fields{
				"http_method": r.Method,
				"http_path":   r.URL.Path,
				"remote_addr": r.RemoteAddr,
			})

			w.Header().Set(traceIDHeader, traceID)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			startTime := time.Now()

			httpLogger.Debug("Request started", port.Fields{"trace_inherited": inherited})

			next.ServeHTTP(ww, r.WithContext(contextkeys.ContextWithRequest(r.Context(), coreLogger, traceID)))

			fields := port.Fields{
				"status_code":   ww.Status(),
				"bytes_written": ww.BytesWritten(),
				"duration_ms":   time.Since(startTime).Milliseconds(),
			}
			if ww.Status() >= http.StatusInternalServerError {
				httpLogger.Warn("Request failed", fields)
				return
			}
			httpLogger.Info("Request finished", fields)
		})
	}
}

func requestTraceID(r *http.Request) (string, bool) {
	if traceID := r.Header.Get(traceIDHeader); traceID != "" {
		if _, err := uuid.Parse(traceID); err == nil {
			return traceID, true
		}
	}
	return uuid.NewString(), false
}
