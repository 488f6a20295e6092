package handlers_test_suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	api "github.com/rogerio-castellano/chuzone-catalog/internal/http"
	handler "github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/chuzone-catalog/internal/metrics"
	"github.com/rogerio-castellano/chuzone-catalog/internal/repo"
)

type testEnv struct {
	router  http.Handler
	catalog *catalog.Catalog
	store   *repo.InMemoryKeyValueRepository
	metrics *metrics.Metrics
	now     time.Time
}

func (e *testEnv) clock() time.Time { return e.now }

// newTestEnv builds a router over a freshly seeded in-memory catalog.
func newTestEnv(t *testing.T, opts catalog.Options) *testEnv {
	t.Helper()
	env := &testEnv{
		store:   repo.NewInMemoryKeyValueRepository(),
		metrics: metrics.New(),
		now:     time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC),
	}
	opts.Clock = env.clock
	opts.Recorder = env.metrics

	c, err := catalog.New(env.store, opts)
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	srv, err := handler.NewServer(c, handler.AppInfo{
		Name:        "ChuZone - Digital Product Platform",
		Version:     "1.0.0",
		Environment: "test",
	}, nil)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}

	env.catalog = c
	env.router = api.NewRouter(api.RouterDeps{Server: srv, Metrics: env.metrics})
	return env
}

func (e *testEnv) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) createProduct(p any) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(req)
}

func (e *testEnv) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(req)
}

func (e *testEnv) requestDelete(id string) catalog.Confirmation {
	w := e.do(httptest.NewRequest(http.MethodDelete, "/api/products/"+id, nil))
	return decodeConfirmation(w)
}

func (e *testEnv) confirm(token string) *httptest.ResponseRecorder {
	return e.do(httptest.NewRequest(http.MethodPost, "/api/confirmations/"+token, nil))
}

func decodeConfirmation(w *httptest.ResponseRecorder) catalog.Confirmation {
	var conf catalog.Confirmation
	if err := json.NewDecoder(w.Body).Decode(&conf); err != nil {
		panic(fmt.Sprintf("failed to decode confirmation: %v", err))
	}
	return conf
}

func (e *testEnv) listProducts(query string) handler.ProductsSearchResult {
	w := e.do(httptest.NewRequest(http.MethodGet, "/api/products"+query, nil))
	var resp handler.ProductsSearchResult
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		panic(fmt.Sprintf("failed to decode products: %v", err))
	}
	return resp
}

func multipartCSV(csvContent string, filename string) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("file", filename)
	part.Write([]byte(csvContent))

	writer.Close()
	return &buf, writer.FormDataContentType()
}

func productNames(resp handler.ProductsSearchResult) []string {
	names := make([]string, len(resp.Data))
	for i, p := range resp.Data {
		names[i] = p.Name
	}
	return names
}
