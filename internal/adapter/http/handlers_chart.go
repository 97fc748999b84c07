package adapthttp

import (
	"bytes"
	"errors"
	"net/http"

	"growthchart/internal/adapter/chartpng"
	"growthchart/internal/app"
	"growthchart/internal/domain"
)

type chartPage struct {
	Data app.ChartData
	Unit domain.Unit
}

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	unit, err := unitQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := s.charts.GetChart(r.Context(), unit)
	if err != nil {
		s.requestLog(r).WithError(err).Error("load chart")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	s.renderPage(w, r, http.StatusOK, "chart.html", chartPage{Data: data, Unit: unit})
}

func (s *Server) handleChartJSON(w http.ResponseWriter, r *http.Request) {
	unit, err := unitQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := s.charts.GetChart(r.Context(), unit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleChartPNG(w http.ResponseWriter, r *http.Request) {
	unit, err := unitQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	data, err := s.charts.GetChart(r.Context(), unit)
	if err != nil {
		s.requestLog(r).WithError(err).Error("load chart")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := chartpng.Render(&buf, data); err != nil {
		if errors.Is(err, chartpng.ErrNoData) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		s.requestLog(r).WithError(err).Error("render chart png")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = buf.WriteTo(w)
}
