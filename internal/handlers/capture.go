package handlers

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/relaylabs/visitlog/internal/db"
	"github.com/relaylabs/visitlog/internal/geo"
	"github.com/relaylabs/visitlog/internal/models"
)

// VisitHandler serves the capture and retrieval endpoints.
type VisitHandler struct {
	DB  *db.DB
	Geo geo.Resolver
	Log zerolog.Logger
}

type clientInfoResponse struct {
	IP           string       `json:"ip"`
	UserAgent    string       `json:"userAgent"`
	LocationData geo.Location `json:"locationData"`
}

// ClientInfo captures one visit. Persistence is a best-effort side effect:
// a store failure is logged and the response succeeds regardless.
func (h *VisitHandler) ClientInfo(w http.ResponseWriter, r *http.Request) {
	ip := clientIP(r)
	ua := r.UserAgent()
	if ua == "" {
		ua = "Unknown"
	}

	// Detached context: a client disconnect must not abort the in-flight
	// lookup or insert. The geo client carries its own timeout.
	loc := h.Geo.Resolve(context.Background(), ip)

	visit := &models.Visit{
		IP:        ip,
		UserAgent: ua,
		City:      loc.City,
		Region:    loc.Region,
		Country:   loc.Country,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
	}
	if err := models.InsertVisit(h.DB, visit); err != nil {
		h.Log.Error().Err(err).Str("ip", ip).Msg("persist visit")
	}

	writeJSON(w, http.StatusOK, clientInfoResponse{
		IP:           ip,
		UserAgent:    ua,
		LocationData: loc,
	})
}
