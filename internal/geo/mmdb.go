package geo

import (
	"context"
	"net"
	"strconv"

	"github.com/oschwald/maxminddb-golang"
)

// Reader resolves IPs against a local MaxMind .mmdb file, for deployments
// that prefer offline lookups over the HTTP provider.
type Reader struct {
	db *maxminddb.Reader
}

func OpenReader(path string) (*Reader, error) {
	db, err := maxminddb.Open(path)
	if err != nil {
		return nil, err
	}
	return &Reader{db: db}, nil
}

func (r *Reader) Close() {
	if r != nil && r.db != nil {
		r.db.Close()
	}
}

// Resolve looks ip up in the local database. Same contract as the HTTP
// client: failures and absent fields degrade to placeholders.
func (r *Reader) Resolve(_ context.Context, ipStr string) Location {
	loc := Unknown()
	if r == nil || r.db == nil || SkipLookup(ipStr) {
		return loc
	}
	ip := net.ParseIP(ipStr)
	if ip == nil {
		return loc
	}

	var record struct {
		Country struct {
			Names map[string]string `maxminddb:"names"`
		} `maxminddb:"country"`
		City struct {
			Names map[string]string `maxminddb:"names"`
		} `maxminddb:"city"`
		Subdivisions []struct {
			Names map[string]string `maxminddb:"names"`
		} `maxminddb:"subdivisions"`
		Location struct {
			Latitude  float64 `maxminddb:"latitude"`
			Longitude float64 `maxminddb:"longitude"`
		} `maxminddb:"location"`
	}

	if err := r.db.Lookup(ip, &record); err != nil {
		return loc
	}

	loc.City = orPlaceholder(record.City.Names["en"])
	loc.Country = orPlaceholder(record.Country.Names["en"])
	if len(record.Subdivisions) > 0 {
		loc.Region = orPlaceholder(record.Subdivisions[0].Names["en"])
	}
	if record.Location.Latitude != 0 || record.Location.Longitude != 0 {
		loc.Latitude = strconv.FormatFloat(record.Location.Latitude, 'f', -1, 64)
		loc.Longitude = strconv.FormatFloat(record.Location.Longitude, 'f', -1, 64)
	}
	return loc
}
