package web

import (
	"embed"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

// Logs serves the static log-viewer page. The page fetches /api/logs
// client-side, so it needs no server-side templating.
func Logs(w http.ResponseWriter, r *http.Request) {
	page, err := staticFS.ReadFile("static/logs.html")
	if err != nil {
		http.Error(w, "log viewer unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
