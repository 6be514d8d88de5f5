// Package clientip resolves the originating address of an HTTP request,
// honoring the forwarding headers set by reverse proxies.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// FromRequest returns the client address for r. X-Forwarded-For wins (first
// hop), then X-Real-IP, then the connection's remote address.
func FromRequest(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		if r.RemoteAddr != "" {
			return r.RemoteAddr
		}
		return "unknown"
	}

	return host
}
