package handlers

import (
	"html/template"

	"go.uber.org/zap"

	"github.com/rogerio-castellano/chuzone-catalog/internal/catalog"
)

// AppInfo is what the page header and footer display.
type AppInfo struct {
	Name        string
	Version     string
	Environment string
}

// Server holds what every handler needs. Handlers are its methods, so
// several servers can live side by side in tests.
type Server struct {
	catalog *catalog.Catalog
	app     AppInfo
	log     *zap.Logger
	pages   *template.Template
}

func NewServer(c *catalog.Catalog, app AppInfo, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	pages, err := parsePages()
	if err != nil {
		return nil, err
	}
	return &Server{
		catalog: c,
		app:     app,
		log:     log,
		pages:   pages,
	}, nil
}
