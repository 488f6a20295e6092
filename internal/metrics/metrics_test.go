package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCatalogCollectors(t *testing.T) {
	m := New()

	m.Observe(3, 2, 4077)
	m.Mutation("add")
	m.Mutation("add")
	m.SyncFailure("clear")

	if got := testutil.ToFloat64(m.products); got != 3 {
		t.Errorf("expected 3 products, got %v", got)
	}
	if got := testutil.ToFloat64(m.categories); got != 2 {
		t.Errorf("expected 2 categories, got %v", got)
	}
	if got := testutil.ToFloat64(m.totalValue); got != 4077 {
		t.Errorf("expected total value 4077, got %v", got)
	}
	if got := testutil.ToFloat64(m.mutations.WithLabelValues("add")); got != 2 {
		t.Errorf("expected 2 add mutations, got %v", got)
	}
	if got := testutil.ToFloat64(m.syncFailures.WithLabelValues("clear")); got != 1 {
		t.Errorf("expected 1 clear sync failure, got %v", got)
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.Observe(1, 1, 19.99)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "catalog_total_value 19.99") {
		t.Errorf("expected catalog_total_value in exposition, got:\n%s", w.Body.String())
	}
}

func TestInstancesDoNotCollide(t *testing.T) {
	// private registries: building twice must not panic on duplicate registration
	New()
	New()
}
