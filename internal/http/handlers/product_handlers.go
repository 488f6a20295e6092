package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

// CreateProductHandler godoc
// @Summary Add a product
// @Description Validates the input and prepends the product to the catalog
// @Tags products
// @Accept json
// @Produce json
// @Param product body ProductRequest true "Product to add"
// @Success 201 {object} models.Product
// @Failure 400 {string} string "Invalid input"
// @Failure 422 {array} catalog.FieldError
// @Router /api/products [post]
func (s *Server) CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}

	created, err := s.catalog.AddProduct(r.Context(), catalog.ProductInput{
		Name:     req.Name,
		Price:    string(req.Price),
		Category: req.Category,
	})
	if err != nil {
		if fields, ok := validationErrors(err); ok {
			s.respond(w, http.StatusUnprocessableEntity, fields)
			return
		}
		s.log.Error("could not add product", zap.Error(err))
		http.Error(w, "could not create product", http.StatusInternalServerError)
		return
	}

	s.respond(w, http.StatusCreated, created)
}

// GetProductsHandler godoc
// @Summary List products
// @Description Newest first. The category parameter does not change the page filter.
// @Tags products
// @Produce json
// @Param category query string false "Category, empty or all for every product"
// @Success 200 {object} ProductsSearchResult
// @Router /api/products [get]
func (s *Server) GetProductsHandler(w http.ResponseWriter, r *http.Request) {
	products := s.catalog.ProductsIn(strings.TrimSpace(r.URL.Query().Get("category")))
	s.respond(w, http.StatusOK, ProductsSearchResult{
		Data: products,
		Meta: Meta{TotalCount: len(products)},
	})
}

// GetProductByIDHandler godoc
// @Summary Get product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.Product
// @Failure 404 {string} string "Not found"
// @Router /api/products/{id} [get]
func (s *Server) GetProductByIDHandler(w http.ResponseWriter, r *http.Request) {
	id := models.ParseID(chi.URLParam(r, "id"))
	product, ok := s.catalog.Product(id)
	if !ok {
		http.Error(w, "product not found", http.StatusNotFound)
		return
	}
	s.respond(w, http.StatusOK, product)
}

// DeleteProductHandler godoc
// @Summary Request the deletion of a product
// @Description Nothing is deleted until the returned token is confirmed
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 202 {object} catalog.Confirmation
// @Failure 400 {string} string "Invalid ID"
// @Router /api/products/{id} [delete]
func (s *Server) DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")
	if strings.TrimSpace(idStr) == "" {
		http.Error(w, "product ID is required", http.StatusBadRequest)
		return
	}
	conf := s.catalog.RequestDelete(models.ParseID(idStr))
	s.respond(w, http.StatusAccepted, conf)
}

// ClearProductsHandler godoc
// @Summary Request the removal of every product
// @Description Nothing is removed until the returned token is confirmed
// @Tags products
// @Produce json
// @Success 202 {object} catalog.Confirmation
// @Router /api/products [delete]
func (s *Server) ClearProductsHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusAccepted, s.catalog.RequestClear())
}

// ConfirmHandler godoc
// @Summary Apply a pending delete or clear
// @Tags confirmations
// @Produce json
// @Param token path string true "Confirmation token"
// @Success 200 {object} catalog.View
// @Failure 404 {string} string "Unknown token"
// @Failure 410 {string} string "Expired token"
// @Router /api/confirmations/{token} [post]
func (s *Server) ConfirmHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.catalog.Confirm(r.Context(), chi.URLParam(r, "token")); err != nil {
		status, msg := confirmationStatus(err)
		http.Error(w, msg, status)
		return
	}
	s.respond(w, http.StatusOK, s.catalog.Derive())
}

// CancelConfirmationHandler godoc
// @Summary Drop a pending delete or clear
// @Tags confirmations
// @Param token path string true "Confirmation token"
// @Success 204 "Cancelled"
// @Failure 404 {string} string "Unknown token"
// @Failure 410 {string} string "Expired token"
// @Router /api/confirmations/{token} [delete]
func (s *Server) CancelConfirmationHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := s.catalog.Cancel(chi.URLParam(r, "token")); err != nil {
		status, msg := confirmationStatus(err)
		http.Error(w, msg, status)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetFilterHandler godoc
// @Summary Current category filter
// @Tags filter
// @Produce json
// @Success 200 {object} FilterResponse
// @Router /api/filter [get]
func (s *Server) GetFilterHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, FilterResponse{Filter: s.catalog.Filter()})
}

// SetFilterHandler godoc
// @Summary Set the category filter
// @Description Any value is accepted; an unknown category shows nothing
// @Tags filter
// @Accept json
// @Produce json
// @Param filter body FilterRequest true "New filter"
// @Success 200 {object} catalog.View
// @Failure 400 {string} string "Invalid input"
// @Router /api/filter [put]
func (s *Server) SetFilterHandler(w http.ResponseWriter, r *http.Request) {
	var req FilterRequest
	if err := readJSON(w, r, &req); err != nil {
		http.Error(w, "invalid input", http.StatusBadRequest)
		return
	}
	s.catalog.SetFilter(req.Filter)
	s.respond(w, http.StatusOK, s.catalog.Derive())
}
