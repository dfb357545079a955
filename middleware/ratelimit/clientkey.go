package ratelimit

import (
	"net"
	"net/http"
	"strings"
)

// ClientKey escolhe a chave do limiter para a requisição.
//
// Com trustXFF, usa o primeiro IP do X-Forwarded-For (cliente original
// atrás do CDN). Senão, usa o host de RemoteAddr.
func ClientKey(r *http.Request, trustXFF bool) string {
	if trustXFF {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
	}

	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil && host != "" {
		return host
	}
	if addr != "" {
		return addr
	}
	return "unknown"
}
