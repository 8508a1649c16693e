package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/relaylabs/visitlog/internal/db"
)

// HealthHandler reports store connectivity to the hosting platform monitor.
type HealthHandler struct {
	DB  *db.DB
	Log zerolog.Logger
}

type healthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	ts := time.Now().UTC().Format(time.RFC3339)
	if err := h.DB.PingContext(ctx); err != nil {
		h.Log.Warn().Err(err).Msg("health: store unreachable")
		writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:    "error",
			Database:  "disconnected",
			Timestamp: ts,
		})
		return
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "ok",
		Database:  "connected",
		Timestamp: ts,
	})
}

func Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("Visitor logging service is up and running.\n"))
}

func Favicon(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
