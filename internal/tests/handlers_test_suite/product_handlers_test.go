package handlers_test_suite

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	handler "github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

func TestCreateProductHandler(t *testing.T) {
	t.Run("Valid product", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		w := env.createProduct(handler.ProductRequest{Name: " Widget ", Price: "19.99", Category: "Tools"})

		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
		var p models.Product
		if err := json.NewDecoder(w.Body).Decode(&p); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if p.Name != "Widget" || p.Price != 19.99 || p.Category != "Tools" {
			t.Errorf("unexpected product %+v", p)
		}
		if !p.ID.Numeric() {
			t.Errorf("expected a numeric id, got %q", p.ID)
		}

		names := productNames(env.listProducts(""))
		if names[0] != "Widget" {
			t.Errorf("expected the new product first, got %v", names)
		}
	})

	t.Run("Price given as a JSON number", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		w := env.createProduct(map[string]any{"name": "Cable", "price": 9.5, "category": "Audio"})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("Comma decimal separator", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		w := env.createProduct(handler.ProductRequest{Name: "Cable", Price: "9,50", Category: "Audio"})
		if w.Code != http.StatusCreated {
			t.Fatalf("expected 201 Created, got %d", w.Code)
		}
	})

	t.Run("Missing fields", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		w := env.createProduct(handler.ProductRequest{Name: "   ", Price: "", Category: "Tools"})

		if w.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", w.Code)
		}
		var errs []catalog.FieldError
		if err := json.NewDecoder(w.Body).Decode(&errs); err != nil {
			t.Fatalf("failed to decode errors: %v", err)
		}
		if len(errs) != 2 || errs[0].Field != "Name" || errs[1].Field != "Price" {
			t.Errorf("expected Name and Price errors, got %+v", errs)
		}
		if got := len(env.catalog.Products()); got != 3 {
			t.Errorf("expected the catalog untouched, got %d products", got)
		}
	})

	t.Run("Invalid prices", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		for _, price := range []handler.PriceText{"abc", "-5", "NaN", "Infinity", "12abc"} {
			w := env.createProduct(handler.ProductRequest{Name: "Widget", Price: price, Category: "Tools"})
			if w.Code != http.StatusUnprocessableEntity {
				t.Errorf("price %q: expected 422, got %d", price, w.Code)
			}
		}
		if got := len(env.catalog.Products()); got != 3 {
			t.Errorf("expected the catalog untouched, got %d products", got)
		}
	})

	t.Run("Malformed JSON", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(`{"name":`))
		w := env.do(req)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("Two JSON values", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		body := bytes.NewBufferString(`{"name":"a","price":"1","category":"c"}{}`)
		w := env.do(httptest.NewRequest(http.MethodPost, "/api/products", body))
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})
}

func TestGetProductsHandler(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})

	all := env.listProducts("")
	if all.Meta.TotalCount != 3 || len(all.Data) != 3 {
		t.Fatalf("expected 3 seeded products, got %+v", all.Meta)
	}

	audio := env.listProducts("?category=Audio")
	if names := productNames(audio); len(names) != 1 || names[0] != "AirPods Pro" {
		t.Errorf("expected only AirPods Pro, got %v", names)
	}

	if got := env.listProducts("?category=all").Meta.TotalCount; got != 3 {
		t.Errorf("expected all products for category=all, got %d", got)
	}
	if got := env.listProducts("?category=Jardin").Meta.TotalCount; got != 0 {
		t.Errorf("expected no product for an unknown category, got %d", got)
	}
	if got := env.catalog.Filter(); got != catalog.AllCategories {
		t.Errorf("listing must not change the filter, got %q", got)
	}
}

func TestGetProductByIDHandler(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})

	w := env.do(httptest.NewRequest(http.MethodGet, "/api/products/2", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"id":2`) {
		t.Errorf("expected a numeric id in %s", w.Body.String())
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/products/999", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestDeleteProductHandler(t *testing.T) {
	t.Run("Nothing happens until confirmed", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		w := env.do(httptest.NewRequest(http.MethodDelete, "/api/products/1", nil))
		if w.Code != http.StatusAccepted {
			t.Fatalf("expected 202 Accepted, got %d", w.Code)
		}
		conf := decodeConfirmation(w)
		if conf.Action != catalog.ActionDelete || conf.ProductID == nil || conf.ProductID.String() != "1" {
			t.Errorf("unexpected confirmation %+v", conf)
		}
		if got := len(env.catalog.Products()); got != 3 {
			t.Fatalf("expected 3 products before confirmation, got %d", got)
		}

		w = env.confirm(conf.Token)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		var view catalog.View
		if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
			t.Fatalf("failed to decode view: %v", err)
		}
		if view.Stats.Count != 2 {
			t.Errorf("expected 2 products after delete, got %d", view.Stats.Count)
		}
		for _, p := range view.Products {
			if p.Name == "MacBook Pro M3" {
				t.Errorf("MacBook Pro M3 should be gone")
			}
		}
	})

	t.Run("Token is single use", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		conf := env.requestDelete("1")
		env.confirm(conf.Token)

		if w := env.confirm(conf.Token); w.Code != http.StatusNotFound {
			t.Errorf("expected 404 on reuse, got %d", w.Code)
		}
	})

	t.Run("Unknown id is a no-op", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		conf := env.requestDelete("does-not-exist")
		if w := env.confirm(conf.Token); w.Code != http.StatusOK {
			t.Fatalf("expected 200 OK, got %d", w.Code)
		}
		if got := len(env.catalog.Products()); got != 3 {
			t.Errorf("expected 3 products, got %d", got)
		}
	})

	t.Run("Cancel keeps the product", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{})
		conf := env.requestDelete("1")

		w := env.do(httptest.NewRequest(http.MethodDelete, "/api/confirmations/"+conf.Token, nil))
		if w.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", w.Code)
		}
		if got := len(env.catalog.Products()); got != 3 {
			t.Errorf("expected 3 products, got %d", got)
		}
		if w := env.confirm(conf.Token); w.Code != http.StatusNotFound {
			t.Errorf("expected 404 after cancel, got %d", w.Code)
		}
	})

	t.Run("Expired token", func(t *testing.T) {
		env := newTestEnv(t, catalog.Options{ConfirmTTL: time.Minute})
		conf := env.requestDelete("1")
		env.now = env.now.Add(2 * time.Minute)

		if w := env.confirm(conf.Token); w.Code != http.StatusGone {
			t.Fatalf("expected 410, got %d", w.Code)
		}
		if got := len(env.catalog.Products()); got != 3 {
			t.Errorf("expected 3 products, got %d", got)
		}
	})
}

func TestClearProductsHandler(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})
	env.catalog.SetFilter("Audio")

	w := env.do(httptest.NewRequest(http.MethodDelete, "/api/products", nil))
	if w.Code != http.StatusAccepted {
		t.Fatalf("expected 202 Accepted, got %d", w.Code)
	}
	conf := decodeConfirmation(w)
	if conf.Action != catalog.ActionClear || conf.ProductID != nil {
		t.Errorf("unexpected confirmation %+v", conf)
	}

	if w := env.confirm(conf.Token); w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	if got := len(env.catalog.Products()); got != 0 {
		t.Errorf("expected an empty catalog, got %d", got)
	}
	if _, found, _ := env.store.Get(t.Context(), catalog.DefaultKey); found {
		t.Errorf("expected the stored key to be removed")
	}
	if got := env.catalog.Filter(); got != "Audio" {
		t.Errorf("clear must not reset the filter, got %q", got)
	}
}

func TestFilterHandlers(t *testing.T) {
	env := newTestEnv(t, catalog.Options{})

	body := strings.NewReader(`{"filter":"Téléphonie"}`)
	w := env.do(httptest.NewRequest(http.MethodPut, "/api/filter", body))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", w.Code)
	}
	var view catalog.View
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	if len(view.Products) != 1 || view.Products[0].Name != "iPhone 15 Pro" {
		t.Errorf("expected only iPhone 15 Pro, got %+v", view.Products)
	}
	if view.Stats.Count != 3 {
		t.Errorf("stats must ignore the filter, got %d", view.Stats.Count)
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/api/filter", nil))
	var resp handler.FilterResponse
	json.NewDecoder(w.Body).Decode(&resp)
	if resp.Filter != "Téléphonie" {
		t.Errorf("expected filter Téléphonie, got %q", resp.Filter)
	}

	w = env.do(httptest.NewRequest(http.MethodPut, "/api/filter", strings.NewReader(`nope`)))
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", w.Code)
	}
}
