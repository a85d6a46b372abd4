package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"refugio/models"
	"refugio/services/availability"

	"github.com/gin-gonic/gin"
)

type fakeProvider struct {
	indexes map[string]*availability.Index
}

func (f *fakeProvider) Queries(propertyID string) (availability.Queries, error) {
	ix, ok := f.indexes[propertyID]
	if !ok {
		return nil, availability.ErrUnknownProperty
	}
	return ix, nil
}

func testDate(t *testing.T, s string) models.DateOnly {
	t.Helper()
	d, err := models.ParseDateOnly(s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return d
}

func availabilityRouter(t *testing.T, provider *fakeProvider) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	h := NewAvailabilityHandler(provider)
	r := gin.New()
	r.GET("/api/properties/:propertyId/availability", h.GetAvailabilityHandler)
	return r
}

func TestGetAvailabilityHandler(t *testing.T) {
	iv, err := models.NewBookedInterval(testDate(t, "2026-09-10"), testDate(t, "2026-09-12"))
	if err != nil {
		t.Fatalf("bad interval: %v", err)
	}
	ready := availability.NewIndex()
	if err := ready.Rebuild([]models.BookedInterval{iv}, testDate(t, "2026-09-02")); err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	provider := &fakeProvider{indexes: map[string]*availability.Index{
		"casa-principal": ready,
		"cabana":         availability.NewIndex(),
	}}
	r := availabilityRouter(t, provider)

	t.Run("unknown property", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/properties/penthouse/availability", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", w.Code)
		}
	})

	t.Run("loading property answers 503", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/properties/cabana/availability", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", w.Code)
		}
	})

	t.Run("window reflects bookings and boundary", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/properties/casa-principal/availability?from=2026-09-01&to=2026-09-14", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
		}

		var resp struct {
			PropertyID string `json:"propertyId"`
			Days       []struct {
				Date      string `json:"date"`
				Available bool   `json:"available"`
			} `json:"days"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if len(resp.Days) != 14 {
			t.Fatalf("got %d days, want 14", len(resp.Days))
		}

		byDate := make(map[string]bool, len(resp.Days))
		for _, d := range resp.Days {
			byDate[d.Date] = d.Available
		}
		checks := map[string]bool{
			"2026-09-01": false, // before boundary
			"2026-09-02": true,
			"2026-09-09": true,
			"2026-09-10": false,
			"2026-09-12": false,
			"2026-09-13": true,
		}
		for date, want := range checks {
			if got, ok := byDate[date]; !ok || got != want {
				t.Errorf("available[%s] = %v (present %v), want %v", date, got, ok, want)
			}
		}
	})

	t.Run("inverted window rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/properties/casa-principal/availability?from=2026-09-14&to=2026-09-01", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})

	t.Run("oversized window rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet,
			"/api/properties/casa-principal/availability?from=2026-01-01&to=2028-01-01", nil)
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", w.Code)
		}
	})
}
