// README: Handler tests for the quote endpoint.
package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"shuttle/internal/http/handlers"
	"shuttle/internal/modules/fare"
)

// stubDistance is a test double for fare.DistanceProvider.
type stubDistance struct {
	perLegKm float64
	err      error
}

func (s *stubDistance) LegDistancesKm(_ context.Context, waypoints []string) ([]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	legs := make([]float64, len(waypoints)-1)
	for i := range legs {
		legs[i] = s.perLegKm
	}
	return legs, nil
}

func buildQuoteRouter(d fare.DistanceProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := fare.NewService(nil, d)
	r := gin.New()
	h := handlers.NewQuoteHandler(svc)
	r.POST("/api/quotes", h.Create)
	return r
}

func doRequest(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestQuoteCreate_OK(t *testing.T) {
	r := buildQuoteRouter(&stubDistance{perLegKm: 18})
	w := doRequest(r, http.MethodPost, "/api/quotes", map[string]any{
		"service_type":    "airport_shuttle",
		"pickup_address":  "5 Queen Street, Auckland",
		"dropoff_address": "1 Victoria Street, Auckland",
		"passengers":      1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		DistanceKm float64 `json:"distance_km"`
		TotalPrice struct {
			Amount   string `json:"amount"`
			Currency string `json:"currency"`
		} `json:"total_price"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.DistanceKm != 18 {
		t.Errorf("distance_km = %v, want 18", resp.DistanceKm)
	}
	// 60.00 minimum covering 10 km, plus 8 km at 2.50
	if resp.TotalPrice.Amount != "80.00" || resp.TotalPrice.Currency != "NZD" {
		t.Errorf("total_price = %s %s, want 80.00 NZD", resp.TotalPrice.Amount, resp.TotalPrice.Currency)
	}
}

func TestQuoteCreate_InvalidInput(t *testing.T) {
	r := buildQuoteRouter(&stubDistance{perLegKm: 18})
	w := doRequest(r, http.MethodPost, "/api/quotes", map[string]any{
		"service_type":    "airport_shuttle",
		"pickup_address":  "",
		"dropoff_address": "1 Victoria Street, Auckland",
		"passengers":      1,
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestQuoteCreate_BadJSON(t *testing.T) {
	r := buildQuoteRouter(&stubDistance{perLegKm: 18})
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
