package handlers_test_suite

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	handler "github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
)

func TestGetStatsHandler(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})
	env.catalog.SetFilter("Audio")

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}

	var stats handler.StatsResponse
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.Count != 3 {
		t.Errorf("expected 3 products, got %v", stats.Count)
	}
	if stats.CategoryCount != 3 {
		t.Errorf("expected 3 categories, got %v", stats.CategoryCount)
	}
	if stats.TotalValue != "4077.00" {
		t.Errorf("expected total value 4077.00, got %v", stats.TotalValue)
	}
	want := []string{"Informatique", "Téléphonie", "Audio"}
	if strings.Join(stats.Categories, ",") != strings.Join(want, ",") {
		t.Errorf("expected categories %v, got %v", want, stats.Categories)
	}
}

func TestGetStatsHandler_ExactDecimalTotal(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})
	for range 3 {
		w := env.createProduct(handler.ProductRequest{Name: "Dime", Price: "0.10", Category: "Coins"})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
		env.now = env.now.Add(1)
	}

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/stats", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var stats handler.StatsResponse
	if err := json.NewDecoder(w.Body).Decode(&stats); err != nil {
		t.Fatalf("failed to decode stats: %v", err)
	}
	if stats.TotalValue != "4077.30" {
		t.Errorf("expected total value 4077.30, got %v", stats.TotalValue)
	}
}

func TestHealthHandler(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var resp handler.HealthResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Status != "ok" || resp.Version != "1.0.0" {
		t.Errorf("unexpected health response %+v", resp)
	}
}

func TestPrometheusEndpoint(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})
	env.createProduct(handler.ProductRequest{Name: "Widget", Price: "10", Category: "Tools"})
	env.do(httptest.NewRequest(http.MethodGet, "/api/products/1", nil))

	w := env.do(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{
		"catalog_products 4",
		"catalog_categories 4",
		`catalog_mutations_total{operation="add"} 1`,
		`http_requests_total{method="POST",path="/api/products",status="201"} 1`,
		`path="/api/products/{id}"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("expected %q in metrics output", want)
		}
	}
}
