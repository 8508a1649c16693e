package handlers

import (
	"net"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// clientIP extracts the caller's address: first hop of X-Forwarded-For when
// present, otherwise the socket address, otherwise "Unknown". Loopback
// addresses normalize to the "localhost" sentinel so downstream geolocation
// and storage treat local traffic uniformly.
func clientIP(r *http.Request) string {
	ip := ""
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		ip = strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
	}
	if ip == "" {
		if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
			ip = host
		} else {
			ip = r.RemoteAddr
		}
	}
	if ip == "" {
		return "Unknown"
	}
	if parsed := net.ParseIP(ip); parsed != nil && parsed.IsLoopback() {
		return "localhost"
	}
	return ip
}
