package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/martin-lopez25/appbrechas/internal/api"
	"github.com/martin-lopez25/appbrechas/internal/model"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerMode(t, false)
}

func newTestServerMode(t *testing.T, devMode bool) *Server {
	t.Helper()
	table := model.NewTable(
		[]string{model.ColFacilityID, model.ColFacilityName, model.ColJobCode},
		[]*model.Row{{FacilityID: "X1", FacilityName: "Hospital Uno", JobCode: "ME01"}},
	)
	h := api.NewHandler(table, nil, nil, api.Options{})
	return NewServer(h, nil, devMode)
}

func TestServer_ServesDashboardAndAPI(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "CLUES") {
		t.Fatalf("index status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/facilities", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"X1 - Hospital Uno"`) {
		t.Fatalf("facilities status=%d body=%s", w.Code, w.Body.String())
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("missing CORS header: %q", got)
	}
}

func TestServer_NoRoute(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("api no-route status=%d", w.Code)
	}

	w = httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/some/page", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("spa fallback status=%d", w.Code)
	}
}

func TestServer_Preflight(t *testing.T) {
	s := newTestServer(t)

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/facilities", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", w.Code)
	}
}

func TestServer_DevModeServesEmbeddedDashboard(t *testing.T) {
	s := newTestServerMode(t, true)

	for _, path := range []string{"/", "/some/page"} {
		w := httptest.NewRecorder()
		s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "CLUES") {
			t.Fatalf("%s: status=%d location=%q", path, w.Code, w.Header().Get("Location"))
		}
		if got := w.Header().Get("Cache-Control"); got != "no-store" {
			t.Fatalf("%s: Cache-Control=%q", path, got)
		}
	}

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/facilities", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("api status=%d", w.Code)
	}
}
