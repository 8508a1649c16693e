package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/relaylabs/visitlog/internal/db"
	"github.com/relaylabs/visitlog/internal/models"
)

type seedLocation struct {
	city    string
	region  string
	country string
	lat     string
	lng     string
	// weight controls relative visit volume (higher = more visits)
	weight float64
}

var locations = []seedLocation{
	{"San Francisco", "California", "United States", "37.7749", "-122.4194", 6.0},
	{"New York", "New York", "United States", "40.7128", "-74.0060", 5.5},
	{"London", "England", "United Kingdom", "51.5074", "-0.1278", 5.0},
	{"Bengaluru", "Karnataka", "India", "12.9716", "77.5946", 4.5},
	{"Berlin", "Berlin", "Germany", "52.5200", "13.4050", 3.5},
	{"Toronto", "Ontario", "Canada", "43.6532", "-79.3832", 3.0},
	{"Sydney", "New South Wales", "Australia", "-33.8688", "151.2093", 2.5},
	{"Tokyo", "Tokyo", "Japan", "35.6762", "139.6503", 2.5},
	{"Sao Paulo", "Sao Paulo", "Brazil", "-23.5505", "-46.6333", 2.0},
	{"Amsterdam", "North Holland", "Netherlands", "52.3676", "4.9041", 1.8},
	{"Singapore", "Central Singapore", "Singapore", "1.3521", "103.8198", 1.5},
	{"N/A", "N/A", "N/A", "N/A", "N/A", 1.2}, // lookups that failed
}

var userAgents = []struct {
	ua     string
	weight float64
}{
	{"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36", 30},
	{"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15", 15},
	{"Mozilla/5.0 (X11; Linux x86_64; rv:127.0) Gecko/20100101 Firefox/127.0", 10},
	{"Mozilla/5.0 (iPhone; CPU iPhone OS 17_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Mobile/15E148 Safari/604.1", 12},
	{"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Mobile Safari/537.36", 10},
	{"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)", 4},
	{"curl/8.6.0", 3},
	{"python-requests/2.32.0", 2},
	{"Unknown", 2},
}

func main() {
	dbPath := flag.String("db", "./visitlog.db", "sqlite database path")
	count := flag.Int("n", 500, "number of visits to seed")
	flag.Parse()

	database, err := db.Open(*dbPath)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer database.Close()

	now := time.Now().UTC()
	for i := 0; i < *count; i++ {
		loc := pickLocation()
		visit := &models.Visit{
			IP:        randomIP(),
			UserAgent: pickUserAgent(),
			City:      loc.city,
			Region:    loc.region,
			Country:   loc.country,
			Latitude:  loc.lat,
			Longitude: loc.lng,
			// Spread visits over recent weeks, skewed toward today.
			VisitedAt: now.Add(-time.Duration(rand.ExpFloat64() * float64(10*24*time.Hour))),
		}
		if err := models.InsertVisit(database, visit); err != nil {
			log.Fatalf("insert visit %d: %v", i+1, err)
		}
	}

	fmt.Printf("seeded %d visits into %s\n", *count, *dbPath)
}

func pickLocation() seedLocation {
	total := 0.0
	for _, l := range locations {
		total += l.weight
	}
	r := rand.Float64() * total
	for _, l := range locations {
		r -= l.weight
		if r <= 0 {
			return l
		}
	}
	return locations[0]
}

func pickUserAgent() string {
	total := 0.0
	for _, u := range userAgents {
		total += u.weight
	}
	r := rand.Float64() * total
	for _, u := range userAgents {
		r -= u.weight
		if r <= 0 {
			return u.ua
		}
	}
	return userAgents[0].ua
}

func randomIP() string {
	if rand.Float64() < 0.05 {
		return "localhost"
	}
	// Stay out of reserved ranges so seeded data looks plausible.
	return fmt.Sprintf("%d.%d.%d.%d", 20+rand.Intn(180), rand.Intn(256), rand.Intn(256), 1+rand.Intn(254))
}
