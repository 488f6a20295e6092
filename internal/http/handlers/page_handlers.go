package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
	"github.com/rogerio-castellano/chuzone-catalog/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageFuncs = template.FuncMap{
	"price":         formatPrice,
	"date":          formatDate,
	"categoryLabel": categoryLabel,
}

func parsePages() (*template.Template, error) {
	return template.New("pages").Funcs(pageFuncs).ParseFS(templateFS, "templates/*.html")
}

func formatPrice(p float64) string {
	return catalog.FormatPrice(p) + " €"
}

// formatDate renders the day a product was added the way fr-FR locales do.
func formatDate(t time.Time) string {
	return t.Local().Format("02/01/2006")
}

func categoryLabel(c string) string {
	if c == catalog.AllCategories {
		return "Toutes catégories"
	}
	return c
}

type formValues struct {
	Name     string
	Price    string
	Category string
}

type indexPage struct {
	App    AppInfo
	View   catalog.View
	Form   formValues
	Notice []catalog.FieldError
}

type confirmPage struct {
	App          AppInfo
	Confirmation catalog.Confirmation
	Message      string
	Product      *models.Product
}

func (s *Server) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := s.pages.ExecuteTemplate(&buf, name, data); err != nil {
		s.log.Error("failed to render page", zap.String("page", name), zap.Error(err))
		http.Error(w, "could not render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Warn("failed to write page", zap.String("page", name), zap.Error(err))
	}
}

func (s *Server) IndexHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "index", indexPage{App: s.app, View: s.catalog.Derive()})
}

// AddProductFormHandler clears the form by redirecting on success and keeps
// the typed values on rejection.
func (s *Server) AddProductFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	form := formValues{
		Name:     r.PostFormValue("name"),
		Price:    r.PostFormValue("price"),
		Category: r.PostFormValue("category"),
	}

	_, err := s.catalog.AddProduct(r.Context(), catalog.ProductInput(form))
	if err != nil {
		fields, ok := validationErrors(err)
		if !ok {
			s.log.Error("could not add product", zap.Error(err))
			http.Error(w, "could not create product", http.StatusInternalServerError)
			return
		}
		s.render(w, http.StatusUnprocessableEntity, "index", indexPage{
			App:    s.app,
			View:   s.catalog.Derive(),
			Form:   form,
			Notice: fields,
		})
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) SetFilterFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	s.catalog.SetFilter(r.PostFormValue("category"))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) DeleteFormHandler(w http.ResponseWriter, r *http.Request) {
	id := models.ParseID(chi.URLParam(r, "id"))
	page := confirmPage{
		App:          s.app,
		Confirmation: s.catalog.RequestDelete(id),
		Message:      "Êtes-vous sûr de vouloir supprimer ce produit ?",
	}
	if p, ok := s.catalog.Product(id); ok {
		page.Product = &p
	}
	s.render(w, http.StatusOK, "confirm", page)
}

func (s *Server) ClearFormHandler(w http.ResponseWriter, r *http.Request) {
	s.render(w, http.StatusOK, "confirm", confirmPage{
		App:          s.app,
		Confirmation: s.catalog.RequestClear(),
		Message:      "Êtes-vous sûr de vouloir supprimer tous les produits ?",
	})
}

// ConfirmFormHandler applies the pending action when decision is yes and
// drops it otherwise.
func (s *Server) ConfirmFormHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	token := chi.URLParam(r, "token")

	var err error
	if r.PostFormValue("decision") == "yes" {
		_, err = s.catalog.Confirm(r.Context(), token)
	} else {
		_, err = s.catalog.Cancel(token)
	}
	if err != nil {
		status, msg := confirmationStatus(err)
		http.Error(w, msg, status)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
