package models

import (
	"fmt"
	"time"

	"github.com/relaylabs/visitlog/internal/db"
)

type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

type UserAgentCount struct {
	UserAgent string
	Count     int
}

func TotalVisits(d *db.DB) (int, error) {
	var count int
	err := d.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&count)
	return count, err
}

// VisitsSince counts visits at or after t. The boundary is computed in Go so
// the query stays portable across sqlite and postgres.
func VisitsSince(d *db.DB, t time.Time) (int, error) {
	var count int
	err := d.QueryRow(d.Rebind(`SELECT COUNT(*) FROM visits WHERE visited_at >= ?`), t).Scan(&count)
	return count, err
}

func TopCountries(d *db.DB, limit int) ([]CountryCount, error) {
	rows, err := d.Query(
		d.Rebind(`SELECT country, COUNT(*) as cnt FROM visits WHERE country != 'N/A' GROUP BY country ORDER BY cnt DESC LIMIT ?`),
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("top countries: %w", err)
	}
	defer rows.Close()

	var results []CountryCount
	for rows.Next() {
		var c CountryCount
		if err := rows.Scan(&c.Country, &c.Count); err != nil {
			return nil, fmt.Errorf("scan country: %w", err)
		}
		results = append(results, c)
	}
	return results, rows.Err()
}

// UserAgentCounts returns distinct user agents with their frequency, most
// common first. Classification into browser/OS/device happens in the handler
// layer, so the store only groups raw strings.
func UserAgentCounts(d *db.DB) ([]UserAgentCount, error) {
	rows, err := d.Query(`SELECT user_agent, COUNT(*) as cnt FROM visits GROUP BY user_agent ORDER BY cnt DESC`)
	if err != nil {
		return nil, fmt.Errorf("user agent counts: %w", err)
	}
	defer rows.Close()

	var results []UserAgentCount
	for rows.Next() {
		var u UserAgentCount
		if err := rows.Scan(&u.UserAgent, &u.Count); err != nil {
			return nil, fmt.Errorf("scan user agent: %w", err)
		}
		results = append(results, u)
	}
	return results, rows.Err()
}
