package adapthttp

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/gorilla/schema"

	"growthchart/internal/domain"
)

var formDecoder = func() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}()

type submitForm struct {
	Weight string `schema:"weight,required"`
}

type indexPage struct {
	Weight string
	Error  string
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, "index.html", indexPage{})
}

// plainDecimal matches digits with at most one "." or "," separator.
var plainDecimal = regexp.MustCompile(`^(\d+([.,]\d*)?|[.,]\d+)$`)

// parseWeight accepts either "." or "," as the decimal separator. Exponents,
// hex floats and digit separators are rejected.
func parseWeight(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if !plainDecimal.MatchString(v) {
		return 0, domain.ErrInvalidWeight
	}
	f, err := strconv.ParseFloat(strings.Replace(v, ",", ".", 1), 64)
	if err != nil {
		return 0, domain.ErrInvalidWeight
	}
	return f, nil
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<16)
	if err := r.ParseForm(); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, "index.html", indexPage{Error: "invalid form"})
		return
	}

	var form submitForm
	if err := formDecoder.Decode(&form, r.PostForm); err != nil {
		s.renderPage(w, r, http.StatusBadRequest, "index.html", indexPage{Error: "weight is required"})
		return
	}

	weight, err := parseWeight(form.Weight)
	if err == nil {
		_, err = s.measurements.Submit(r.Context(), weight)
	}
	switch {
	case errors.Is(err, domain.ErrInvalidWeight), errors.Is(err, domain.ErrBeforeBirth):
		s.renderPage(w, r, http.StatusBadRequest, "index.html", indexPage{Weight: form.Weight, Error: err.Error()})
		return
	case err != nil:
		s.requestLog(r).WithError(err).Error("submit measurement")
		s.renderPage(w, r, http.StatusInternalServerError, "index.html", indexPage{Weight: form.Weight, Error: "could not save the measurement"})
		return
	}

	http.Redirect(w, r, "/chart", http.StatusSeeOther)
}

func (s *Server) handleMeasurements(w http.ResponseWriter, r *http.Request) {
	items, err := s.measurements.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	items, err := s.measurements.List(r.Context())
	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	body, err := gocsv.MarshalBytes(&items)
	if err != nil {
		s.requestLog(r).WithError(err).Error("export csv")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "measurements.csv"))
	_, _ = w.Write(body)
}
