package models

import (
	"testing"
	"time"

	"github.com/relaylabs/visitlog/internal/db"
)

func testDB(t *testing.T) *db.DB {
	t.Helper()
	d, err := db.Open(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func seedVisit(t *testing.T, d *db.DB, ip string, at time.Time) {
	t.Helper()
	v := &Visit{
		IP:        ip,
		UserAgent: "test-agent",
		City:      "N/A",
		Region:    "N/A",
		Country:   "N/A",
		Latitude:  "N/A",
		Longitude: "N/A",
		VisitedAt: at,
	}
	if err := InsertVisit(d, v); err != nil {
		t.Fatal(err)
	}
}

func TestInsertVisit_DefaultsVisitedAt(t *testing.T) {
	d := testDB(t)
	v := &Visit{IP: "203.0.113.9", UserAgent: "ua", City: "N/A", Region: "N/A", Country: "N/A", Latitude: "N/A", Longitude: "N/A"}
	before := time.Now().UTC()
	if err := InsertVisit(d, v); err != nil {
		t.Fatal(err)
	}
	if v.VisitedAt.Before(before) {
		t.Errorf("visited_at = %v, want >= %v", v.VisitedAt, before)
	}
}

func TestListVisitsPage_OrderedByRecency(t *testing.T) {
	d := testDB(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedVisit(t, d, "198.51.100.1", base)
	seedVisit(t, d, "198.51.100.2", base.Add(time.Hour))
	seedVisit(t, d, "198.51.100.3", base.Add(2*time.Hour))

	total, visits, err := ListVisitsPage(d, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(visits) != 3 {
		t.Fatalf("len(visits) = %d, want 3", len(visits))
	}
	if visits[0].IP != "198.51.100.3" {
		t.Errorf("first row ip = %q, want most recent %q", visits[0].IP, "198.51.100.3")
	}
	if visits[2].IP != "198.51.100.1" {
		t.Errorf("last row ip = %q, want oldest %q", visits[2].IP, "198.51.100.1")
	}
}

func TestListVisitsPage_Slicing(t *testing.T) {
	d := testDB(t)
	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 25; i++ {
		seedVisit(t, d, "198.51.100.1", base.Add(time.Duration(i)*time.Minute))
	}

	total, page1, err := ListVisitsPage(d, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 25 {
		t.Errorf("total = %d, want 25", total)
	}
	if len(page1) != 10 {
		t.Errorf("page 1 len = %d, want 10", len(page1))
	}

	_, page3, err := ListVisitsPage(d, 3, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(page3) != 5 {
		t.Errorf("page 3 len = %d, want 5", len(page3))
	}

	_, page4, err := ListVisitsPage(d, 4, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(page4) != 0 {
		t.Errorf("page past the end len = %d, want 0", len(page4))
	}
}

func TestListVisitsPage_TiesBrokenByID(t *testing.T) {
	d := testDB(t)
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	seedVisit(t, d, "198.51.100.1", at)
	seedVisit(t, d, "198.51.100.2", at)

	_, visits, err := ListVisitsPage(d, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(visits) != 2 {
		t.Fatalf("len = %d, want 2", len(visits))
	}
	if visits[0].ID <= visits[1].ID {
		t.Errorf("equal timestamps: ids = %d, %d; want newer insert first", visits[0].ID, visits[1].ID)
	}
}

func TestListVisitsPage_Empty(t *testing.T) {
	d := testDB(t)
	total, visits, err := ListVisitsPage(d, 1, 10)
	if err != nil {
		t.Fatal(err)
	}
	if total != 0 {
		t.Errorf("total = %d, want 0", total)
	}
	if len(visits) != 0 {
		t.Errorf("len = %d, want 0", len(visits))
	}
}
