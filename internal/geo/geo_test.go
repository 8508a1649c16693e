package geo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func testClient(t *testing.T, handler http.HandlerFunc) (*Client, *int64) {
	t.Helper()
	var calls int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, time.Second, zerolog.Nop()), &calls
}

func TestResolve_Success(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/8.8.8.8/json/" {
			t.Errorf("path = %q, want /8.8.8.8/json/", r.URL.Path)
		}
		w.Write([]byte(`{"city":"Mountain View","region":"California","country_name":"United States","latitude":37.386,"longitude":-122.0838}`))
	})

	loc := c.Resolve(context.Background(), "8.8.8.8")
	if loc.City != "Mountain View" {
		t.Errorf("city = %q", loc.City)
	}
	if loc.Region != "California" {
		t.Errorf("region = %q", loc.Region)
	}
	if loc.Country != "United States" {
		t.Errorf("country = %q", loc.Country)
	}
	if loc.Latitude != "37.386" {
		t.Errorf("latitude = %q, want provider formatting preserved", loc.Latitude)
	}
	if loc.Longitude != "-122.0838" {
		t.Errorf("longitude = %q", loc.Longitude)
	}
}

func TestResolve_MissingFieldsDefaultIndividually(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city":"Lagos","country_name":"Nigeria"}`))
	})

	loc := c.Resolve(context.Background(), "8.8.8.8")
	if loc.City != "Lagos" || loc.Country != "Nigeria" {
		t.Errorf("present fields lost: %+v", loc)
	}
	for name, got := range map[string]string{"region": loc.Region, "latitude": loc.Latitude, "longitude": loc.Longitude} {
		if got != Placeholder {
			t.Errorf("%s = %q, want %q", name, got, Placeholder)
		}
	}
}

func TestResolve_NonOKStatus(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	if loc := c.Resolve(context.Background(), "8.8.8.8"); loc != Unknown() {
		t.Errorf("loc = %+v, want all placeholders", loc)
	}
}

func TestResolve_MalformedBody(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	})
	if loc := c.Resolve(context.Background(), "8.8.8.8"); loc != Unknown() {
		t.Errorf("loc = %+v, want all placeholders", loc)
	}
}

func TestResolve_ProviderErrorFlag(t *testing.T) {
	c, _ := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":true,"reason":"Reserved IP Address"}`))
	})
	if loc := c.Resolve(context.Background(), "8.8.8.8"); loc != Unknown() {
		t.Errorf("loc = %+v, want all placeholders", loc)
	}
}

func TestResolve_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, 20*time.Millisecond, zerolog.Nop())
	if loc := c.Resolve(context.Background(), "8.8.8.8"); loc != Unknown() {
		t.Errorf("loc = %+v, want all placeholders on timeout", loc)
	}
}

func TestResolve_SkipsSentinels(t *testing.T) {
	c, calls := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"city":"Nowhere"}`))
	})

	for _, ip := range []string{"localhost", "Unknown", ""} {
		if loc := c.Resolve(context.Background(), ip); loc != Unknown() {
			t.Errorf("Resolve(%q) = %+v, want all placeholders", ip, loc)
		}
	}
	if n := atomic.LoadInt64(calls); n != 0 {
		t.Errorf("provider called %d times for sentinel IPs, want 0", n)
	}
}

func TestUnknown(t *testing.T) {
	loc := Unknown()
	for name, got := range map[string]string{
		"city": loc.City, "region": loc.Region, "country": loc.Country,
		"latitude": loc.Latitude, "longitude": loc.Longitude,
	} {
		if got != Placeholder {
			t.Errorf("%s = %q, want %q", name, got, Placeholder)
		}
	}
}
