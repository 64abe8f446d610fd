package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/pm3import/internal/core"
)

// WithRequestMetadata adds the client IP and User-Agent to ctx for run
// history.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	ip := r.RemoteAddr // Already processed by TrustedRealIP
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	ctx = core.ContextWithIPAddress(ctx, ip)
	ctx = core.ContextWithUserAgent(ctx, r.Header.Get("User-Agent"))
	return ctx
}
