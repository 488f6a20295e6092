package handlers

import (
	"net/http"
)

// GetStatsHandler godoc
// @Summary Catalog statistics
// @Description Computed over the whole catalog, whatever the filter
// @Tags stats
// @Produce json
// @Success 200 {object} StatsResponse
// @Router /api/stats [get]
func (s *Server) GetStatsHandler(w http.ResponseWriter, r *http.Request) {
	view := s.catalog.Derive()
	s.respond(w, http.StatusOK, StatsResponse{
		Count:         view.Stats.Count,
		CategoryCount: view.Stats.CategoryCount,
		TotalValue:    view.Stats.TotalValue,
		Categories:    view.Categories[1:],
	})
}

// HealthHandler godoc
// @Summary Liveness probe
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /health [get]
func (s *Server) HealthHandler(w http.ResponseWriter, r *http.Request) {
	s.respond(w, http.StatusOK, HealthResponse{Status: "ok", Version: s.app.Version})
}
