package api

import (
	"net"
	"net/http"
	"strings"

	"github.com/vovakirdan/arcane-flight/internal/metrics"
	"github.com/vovakirdan/arcane-flight/internal/ratelimit"
)

// RateLimit returns middleware that answers 429 once a client IP runs out of tokens.
func RateLimit(rl *ratelimit.IPRateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Allow(ClientIP(r)) {
				metrics.RecordRejected("rate_limit")
				w.Header().Set("Retry-After", "1")
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ClientIP extracts the client IP, honoring X-Forwarded-For and X-Real-IP.
// Those headers can be spoofed unless a trusted proxy sets them.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
