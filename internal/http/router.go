package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/rogerio-castellano/chuzone-catalog/docs"
	"github.com/rogerio-castellano/chuzone-catalog/internal/http/handlers"
	rl "github.com/rogerio-castellano/chuzone-catalog/internal/http/rate_limiter"
	"github.com/rogerio-castellano/chuzone-catalog/internal/logger"
	"github.com/rogerio-castellano/chuzone-catalog/internal/metrics"
)

type RouterDeps struct {
	Server  *handlers.Server
	Metrics *metrics.Metrics
	Limiter *rl.Limiter
	Logger  *zap.Logger
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	if deps.Logger != nil {
		r.Use(logger.Middleware(deps.Logger))
	}
	r.Use(middleware.Recoverer)
	if deps.Metrics != nil {
		r.Use(MetricsMiddleware(deps.Metrics))
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	s := deps.Server
	r.Get("/", s.IndexHandler)
	r.Get("/health", s.HealthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Get("/api/products", s.GetProductsHandler)
	r.Get("/api/products/{id}", s.GetProductByIDHandler)
	r.Get("/api/filter", s.GetFilterHandler)
	r.Get("/api/stats", s.GetStatsHandler)

	r.Group(func(r chi.Router) {
		if deps.Limiter != nil {
			r.Use(deps.Limiter.Middleware)
		}

		r.Post("/products/form", s.AddProductFormHandler)
		r.Post("/filter", s.SetFilterFormHandler)
		r.Post("/products/{id}/delete", s.DeleteFormHandler)
		r.Post("/clear", s.ClearFormHandler)
		r.Post("/confirm/{token}", s.ConfirmFormHandler)

		r.Post("/api/products", s.CreateProductHandler)
		r.Post("/api/products/import", s.ImportProductsHandler)
		r.Delete("/api/products", s.ClearProductsHandler)
		r.Delete("/api/products/{id}", s.DeleteProductHandler)
		r.Post("/api/confirmations/{token}", s.ConfirmHandler)
		r.Delete("/api/confirmations/{token}", s.CancelConfirmationHandler)
		r.Put("/api/filter", s.SetFilterHandler)
	})
	return r
}
