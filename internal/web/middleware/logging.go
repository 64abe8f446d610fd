// Package middleware provides HTTP middleware for the web server.
package middleware

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/pm3import/internal/logging"
)

// Logger logs one line per request with its status, duration and client.
// Entries carry chi's request ID via logging.FromContext. Imports can
// upload large bodies, so the request size is logged too.
//
// Log fields:
//   - method, path, status
//   - duration_ms: request processing time in milliseconds
//   - bytes_in: declared request body size, -1 when unknown
//   - bytes_out: response body size
//   - ip: client address after TrustedRealIP
//   - user_agent
func Logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		logger := logging.FromContext(r.Context())
		logger.Log(r.Context(), levelFor(statusOf(ww)), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", statusOf(ww),
			"duration_ms", time.Since(start).Milliseconds(),
			"bytes_in", r.ContentLength,
			"bytes_out", ww.BytesWritten(),
			"ip", clientHost(r.RemoteAddr),
			"user_agent", r.UserAgent(),
		)
	})
}

// statusOf reports 200 for handlers that wrote nothing.
func statusOf(ww chimw.WrapResponseWriter) int {
	if s := ww.Status(); s != 0 {
		return s
	}
	return http.StatusOK
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status == http.StatusTooManyRequests:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func clientHost(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
