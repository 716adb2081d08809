// ABOUTME: Client IP extraction from proxy and CDN headers
// ABOUTME: Header priority matches the edge providers in front of the site
package api

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP resolves the caller's address. CDN headers win over generic proxy
// headers because they are set closest to the real client; x-forwarded-for is
// last since intermediate proxies append to it.
func ClientIP(r *http.Request) string {
	if ip := r.Header.Get("Cf-Connecting-Ip"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("True-Client-Ip"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if ip := r.Header.Get("X-Real-Ip"); ip != "" {
		return strings.TrimSpace(ip)
	}
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
