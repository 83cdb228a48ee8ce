package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/blogem/lanauthgate/userctx"
)

// ClientIP stores the caller's address in the request context for audit
// entries. Forwarding headers are only honoured when trustProxy is set,
// since any LAN client can send them.
func ClientIP(trustProxy bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := userctx.SetClientIP(r.Context(), getIPAddress(r, trustProxy))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// getIPAddress extracts IP address from request, checking X-Forwarded-For first when trusted
func getIPAddress(r *http.Request, trustProxy bool) string {
	if trustProxy {
		// Check X-Forwarded-For header (proxy/load balancer)
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			// Take first IP if multiple
			ips := strings.Split(forwarded, ",")
			if ip := strings.TrimSpace(ips[0]); ip != "" {
				return ip
			}
		}

		// Check X-Real-IP header
		if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
			return realIP
		}
	}

	// Fall back to RemoteAddr
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr == "" {
			return userctx.UnknownIP
		}
		return r.RemoteAddr
	}
	return host
}
