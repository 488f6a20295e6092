package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	api "github.com/rogerio-castellano/chuzone-catalog/internal/http"
	"github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/chuzone-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/chuzone-catalog/internal/metrics"
	"github.com/rogerio-castellano/chuzone-catalog/internal/repo"
)

func newRouter(t *testing.T, limiter *rl.Limiter) http.Handler {
	t.Helper()
	c, err := catalog.New(repo.NewInMemoryKeyValueRepository(), catalog.Options{})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	srv, err := handlers.NewServer(c, handlers.AppInfo{Name: "ChuZone", Version: "1.0.0"}, nil)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return api.NewRouter(api.RouterDeps{Server: srv, Metrics: metrics.New(), Limiter: limiter})
}

func TestRateLimitAppliesToMutatingRoutesOnly(t *testing.T) {
	r := newRouter(t, rl.New(0.001, 1))

	send := func(method, path string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(`{"filter":"Audio"}`))
		req.RemoteAddr = "192.0.2.10:4000"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(http.MethodPut, "/api/filter"); code != http.StatusOK {
		t.Fatalf("expected the first write to pass, got %d", code)
	}
	if code := send(http.MethodPut, "/api/filter"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429 on the second write, got %d", code)
	}
	for range 3 {
		if code := send(http.MethodGet, "/api/stats"); code != http.StatusOK {
			t.Errorf("reads are not limited, got %d", code)
		}
	}
}

func TestSwaggerDocIsServed(t *testing.T) {
	r := newRouter(t, nil)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/api/confirmations/{token}") {
		t.Errorf("expected the confirmation route in the API document")
	}
}

func TestMetricsMiddlewareUsesRoutePattern(t *testing.T) {
	m := metrics.New()
	r := chi.NewRouter()
	r.Use(api.MetricsMiddleware(m))
	r.Get("/items/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	for _, id := range []string{"1", "2", "abc"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/items/"+id, nil))
	}

	got := testutil.ToFloat64(m.RequestCounter.WithLabelValues(http.MethodGet, "/items/{id}", "204"))
	if got != 3 {
		t.Errorf("expected 3 requests on the pattern label, got %v", got)
	}
}

func TestUnknownRouteIs404(t *testing.T) {
	r := newRouter(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}
