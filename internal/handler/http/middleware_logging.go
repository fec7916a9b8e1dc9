package http

import (
	"net/http"
	"time"

	"github.com/motormarket/go-mobile-sync/internal/logger"
)

// withLogging emits one access-log line per request with the status,
// payload size, and handling duration. Sync payloads vary wildly in size,
// so the size field is what capacity dashboards chart.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &responseWriter{ResponseWriter: w}

		next.ServeHTTP(lw, r)

		logger.FromRequest(r).Info().
			Str("method", r.Method).
			Str("uri", r.RequestURI).
			Int("status", lw.status).
			Int("size", lw.size).
			Dur("duration", time.Since(start)).
			Send()
	})
}
