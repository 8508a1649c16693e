package handlers

import (
	"net/http"
	"strconv"

	"github.com/relaylabs/visitlog/internal/models"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	invalidPageMsg  = "Invalid page number. Page must be a positive integer."
	invalidLimitMsg = "Invalid limit. Limit must be a number between 1 and 100."
)

type logsResponse struct {
	TotalRecords int            `json:"totalRecords"`
	CurrentPage  int            `json:"currentPage"`
	TotalPages   int            `json:"totalPages"`
	Logs         []models.Visit `json:"logs"`
}

// Logs returns one page of visits, most recent first. Bad pagination params
// are client errors, never logged as faults.
func (h *VisitHandler) Logs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	page := defaultPage
	if raw := q.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			jsonError(w, invalidPageMsg, http.StatusBadRequest)
			return
		}
		page = n
	}

	limit := defaultLimit
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			jsonError(w, invalidLimitMsg, http.StatusBadRequest)
			return
		}
		limit = n
	}

	total, visits, err := models.ListVisitsPage(h.DB, page, limit)
	if err != nil {
		h.Log.Error().Err(err).Int("page", page).Int("limit", limit).Msg("list visits")
		jsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if visits == nil {
		visits = []models.Visit{}
	}

	writeJSON(w, http.StatusOK, logsResponse{
		TotalRecords: total,
		CurrentPage:  page,
		TotalPages:   (total + limit - 1) / limit,
		Logs:         visits,
	})
}
