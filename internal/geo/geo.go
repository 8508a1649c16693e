package geo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// Placeholder is the neutral value stored when a location field is unknown.
const Placeholder = "N/A"

// Location is a best-effort geolocation of an IP address. Latitude and
// longitude are kept as strings to preserve the provider's formatting.
type Location struct {
	City      string `json:"city"`
	Region    string `json:"region"`
	Country   string `json:"country"`
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Unknown returns a Location with every field set to the placeholder.
func Unknown() Location {
	return Location{
		City:      Placeholder,
		Region:    Placeholder,
		Country:   Placeholder,
		Latitude:  Placeholder,
		Longitude: Placeholder,
	}
}

// Resolver maps an IP address to a Location. Implementations never fail:
// any lookup problem degrades to placeholder fields.
type Resolver interface {
	Resolve(ctx context.Context, ip string) Location
}

// SkipLookup reports whether ip is a sentinel that should never be sent to
// a lookup backend.
func SkipLookup(ip string) bool {
	return ip == "" || ip == "localhost" || ip == "Unknown"
}

// Client resolves IPs through an ipapi.co-compatible HTTP provider.
// Every capture re-queries the provider; results are not cached.
type Client struct {
	baseURL string
	client  *http.Client
	log     zerolog.Logger
}

// NewClient builds a provider client. The timeout bounds the whole outbound
// call; the reference deployment uses 3 seconds.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if baseURL == "" {
		baseURL = "https://ipapi.co"
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		log:     log,
	}
}

// Resolve issues a single GET to the provider. Timeouts, non-2xx statuses,
// malformed bodies and provider-reported errors all degrade to Unknown();
// individual missing fields degrade to the placeholder. No retries.
func (c *Client) Resolve(ctx context.Context, ip string) Location {
	loc := Unknown()
	if SkipLookup(ip) {
		return loc
	}

	endpoint := fmt.Sprintf("%s/%s/json/", c.baseURL, url.PathEscape(ip))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		c.log.Debug().Err(err).Str("ip", ip).Msg("geo: build request")
		return loc
	}
	req.Header.Set("User-Agent", "visitlog/geo")

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("ip", ip).Msg("geo: provider unreachable")
		return loc
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Debug().Int("status", resp.StatusCode).Str("ip", ip).Msg("geo: provider error status")
		return loc
	}

	var body struct {
		Error       bool        `json:"error"`
		City        string      `json:"city"`
		Region      string      `json:"region"`
		CountryName string      `json:"country_name"`
		Latitude    json.Number `json:"latitude"`
		Longitude   json.Number `json:"longitude"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.log.Debug().Err(err).Str("ip", ip).Msg("geo: malformed provider body")
		return loc
	}
	if body.Error {
		return loc
	}

	loc.City = orPlaceholder(body.City)
	loc.Region = orPlaceholder(body.Region)
	loc.Country = orPlaceholder(body.CountryName)
	loc.Latitude = orPlaceholder(body.Latitude.String())
	loc.Longitude = orPlaceholder(body.Longitude.String())
	return loc
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
