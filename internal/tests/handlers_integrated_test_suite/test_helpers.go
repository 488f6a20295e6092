package handlers_integrated_test_suite

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	"github.com/rogerio-castellano/chuzone-catalog/internal/db"
	api "github.com/rogerio-castellano/chuzone-catalog/internal/http"
	handler "github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/chuzone-catalog/internal/repo"
)

// backend is one SQL database the suite runs against.
type backend struct {
	name  string
	store *repo.SQLKeyValueRepository
}

// backends returns SQLite always and Postgres when DATABASE_URL is set.
func backends(t *testing.T) []backend {
	t.Helper()
	ctx := context.Background()

	open := func(driver, dsn string) *sql.DB {
		database, err := db.Connect(ctx, driver, dsn)
		if err != nil {
			t.Fatalf("could not connect to %s: %v", driver, err)
		}
		t.Cleanup(func() { database.Close() })
		return database
	}

	table := fmt.Sprintf("kv_it_%d", os.Getpid())
	list := []backend{{
		name:  "sqlite",
		store: newStore(t, open("sqlite", "file:"+filepath.Join(t.TempDir(), "it.db")), repo.DialectSQLite, table),
	}}
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		database := open("postgres", dsn)
		list = append(list, backend{
			name:  "postgres",
			store: newStore(t, database, repo.DialectPostgres, table),
		})
		t.Cleanup(func() { database.Exec("DROP TABLE IF EXISTS " + table) })
	}
	return list
}

func newStore(t *testing.T, database *sql.DB, dialect repo.Dialect, table string) *repo.SQLKeyValueRepository {
	t.Helper()
	store, err := repo.NewSQLKeyValueRepository(database, dialect, table)
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	if err := store.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("failed to create table: %v", err)
	}
	if err := store.Delete(context.Background(), catalog.DefaultKey); err != nil {
		t.Fatalf("failed to reset table: %v", err)
	}
	return store
}

// start loads a catalog from store and routes to it, as a process start would.
func start(t *testing.T, store repo.KeyValueRepository, policy catalog.SyncPolicy) (http.Handler, *catalog.Catalog) {
	t.Helper()
	c, err := catalog.New(store, catalog.Options{SyncPolicy: policy})
	if err != nil {
		t.Fatalf("failed to build catalog: %v", err)
	}
	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("failed to load catalog: %v", err)
	}
	srv, err := handler.NewServer(c, handler.AppInfo{Name: "ChuZone", Version: "1.0.0"}, nil)
	if err != nil {
		t.Fatalf("failed to build server: %v", err)
	}
	return api.NewRouter(api.RouterDeps{Server: srv}), c
}

func createProduct(r http.Handler, p handler.ProductRequest) *httptest.ResponseRecorder {
	body, _ := json.Marshal(p)
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader(body))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// deleteConfirmed requests a deletion and confirms it.
func deleteConfirmed(t *testing.T, r http.Handler, path string) {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, path, nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d", w.Code)
	}
	var conf catalog.Confirmation
	if err := json.NewDecoder(w.Body).Decode(&conf); err != nil {
		t.Fatalf("failed to decode confirmation: %v", err)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/confirmations/"+conf.Token, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK on confirm, got %d", w.Code)
	}
}
