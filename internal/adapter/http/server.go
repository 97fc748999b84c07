// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"growthchart/internal/app"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Server is the driving HTTP adapter that routes requests to application
// services.
type Server struct {
	measurements *app.MeasurementService
	charts       *app.ChartService
	log          logrus.FieldLogger
}

// New creates a Server wired to the given application services.
func New(ms *app.MeasurementService, cs *app.ChartService, log logrus.FieldLogger) *Server {
	return &Server{measurements: ms, charts: cs, log: log}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.loggingMiddleware, securityHeaders)

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/chart", s.handleChart).Methods(http.MethodGet)
	r.HandleFunc("/chart.png", s.handleChartPNG).Methods(http.MethodGet)
	r.HandleFunc("/export.csv", s.handleExportCSV).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	api.HandleFunc("/measurements", s.handleMeasurements).Methods(http.MethodGet)
	api.HandleFunc("/chart", s.handleChartJSON).Methods(http.MethodGet)

	return withNoCache(r)
}
