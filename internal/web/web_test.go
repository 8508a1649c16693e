package web

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLogs_ServesViewerPage(t *testing.T) {
	rr := httptest.NewRecorder()
	Logs(rr, httptest.NewRequest("GET", "/logs", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q, want text/html", ct)
	}
	if !strings.Contains(rr.Body.String(), "/api/logs") {
		t.Error("viewer page does not reference /api/logs")
	}
}
