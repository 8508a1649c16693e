package models

import (
	"fmt"
	"time"

	"github.com/relaylabs/visitlog/internal/db"
)

// Visit is one persisted capture event. Rows are immutable once created.
type Visit struct {
	ID        int64     `json:"id"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	City      string    `json:"city"`
	Region    string    `json:"region"`
	Country   string    `json:"country"`
	Latitude  string    `json:"latitude"`
	Longitude string    `json:"longitude"`
	VisitedAt time.Time `json:"visited_at"`
}

func InsertVisit(d *db.DB, v *Visit) error {
	if v.VisitedAt.IsZero() {
		v.VisitedAt = time.Now().UTC()
	}
	_, err := d.Exec(
		d.Rebind(`INSERT INTO visits (ip, user_agent, city, region, country, latitude, longitude, visited_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		v.IP, v.UserAgent, v.City, v.Region, v.Country, v.Latitude, v.Longitude, v.VisitedAt,
	)
	if err != nil {
		return fmt.Errorf("insert visit: %w", err)
	}
	return nil
}

// ListVisitsPage returns the total row count plus one page of visits ordered
// most recent first. page and size must already be validated by the caller;
// size is capped at 100 before it reaches the store.
func ListVisitsPage(d *db.DB, page, size int) (int, []Visit, error) {
	var total int
	if err := d.QueryRow(`SELECT COUNT(*) FROM visits`).Scan(&total); err != nil {
		return 0, nil, fmt.Errorf("count visits: %w", err)
	}

	rows, err := d.Query(
		d.Rebind(`SELECT id, ip, user_agent, city, region, country, latitude, longitude, visited_at
		FROM visits ORDER BY visited_at DESC, id DESC LIMIT ? OFFSET ?`),
		size, (page-1)*size,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("list visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		if err := rows.Scan(
			&v.ID, &v.IP, &v.UserAgent, &v.City, &v.Region, &v.Country,
			&v.Latitude, &v.Longitude, &v.VisitedAt,
		); err != nil {
			return 0, nil, fmt.Errorf("scan visit: %w", err)
		}
		visits = append(visits, v)
	}
	return total, visits, rows.Err()
}
