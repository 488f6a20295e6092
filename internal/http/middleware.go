package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rogerio-castellano/chuzone-catalog/internal/metrics"
)

// MetricsMiddleware records count and duration of every request, labelled
// with the matched route pattern rather than the raw path.
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			path := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				path = rctx.RoutePattern()
			}
			labels := []string{r.Method, path, strconv.Itoa(status)}
			m.RequestCounter.WithLabelValues(labels...).Inc()
			m.RequestDurationHistogram.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		})
	}
}
