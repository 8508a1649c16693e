package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/relaylabs/visitlog/internal/analytics"
	"github.com/relaylabs/visitlog/internal/models"
)

type nameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type statsResponse struct {
	TotalVisits  int                   `json:"totalVisits"`
	VisitsToday  int                   `json:"visitsToday"`
	TopCountries []models.CountryCount `json:"topCountries"`
	TopBrowsers  []nameCount           `json:"topBrowsers"`
	TopDevices   []nameCount           `json:"topDevices"`
	BotVisits    int                   `json:"botVisits"`
}

// Stats aggregates the stored visits: totals, country breakdown, and a
// browser/device/bot breakdown derived by classifying the raw user agents.
func (h *VisitHandler) Stats(w http.ResponseWriter, r *http.Request) {
	total, err := models.TotalVisits(h.DB)
	if err != nil {
		h.Log.Error().Err(err).Msg("stats: total visits")
		jsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	midnight := time.Now().UTC().Truncate(24 * time.Hour)
	today, err := models.VisitsSince(h.DB, midnight)
	if err != nil {
		h.Log.Error().Err(err).Msg("stats: visits today")
		jsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	countries, err := models.TopCountries(h.DB, 10)
	if err != nil {
		h.Log.Error().Err(err).Msg("stats: top countries")
		jsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if countries == nil {
		countries = []models.CountryCount{}
	}

	agents, err := models.UserAgentCounts(h.DB)
	if err != nil {
		h.Log.Error().Err(err).Msg("stats: user agents")
		jsonError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	browsers := make(map[string]int)
	devices := make(map[string]int)
	bots := 0
	for _, a := range agents {
		p := analytics.Classify(a.UserAgent)
		browsers[p.Browser] += a.Count
		devices[p.Device] += a.Count
		if p.Bot {
			bots += a.Count
		}
	}

	writeJSON(w, http.StatusOK, statsResponse{
		TotalVisits:  total,
		VisitsToday:  today,
		TopCountries: countries,
		TopBrowsers:  topCounts(browsers, 10),
		TopDevices:   topCounts(devices, 10),
		BotVisits:    bots,
	})
}

func topCounts(m map[string]int, limit int) []nameCount {
	out := make([]nameCount, 0, len(m))
	for name, count := range m {
		out = append(out, nameCount{Name: name, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
