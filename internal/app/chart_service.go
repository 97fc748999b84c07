package app

import (
	"context"
	"time"

	"growthchart/internal/domain"
)

// LabelLayout renders chart labels as day/month/year.
const LabelLayout = "02/01/2006"

// ChartData holds the parallel series behind the growth chart. Index i of
// every slice describes the same measurement.
type ChartData struct {
	Unit    domain.Unit `json:"unit"`
	Labels  []string    `json:"labels"`
	Weights []float64   `json:"weights"`
	BandMin []float64   `json:"bandMin"`
	BandMax []float64   `json:"bandMax"`
	Days    []time.Time `json:"-"`
}

// Len returns the number of points.
func (c ChartData) Len() int { return len(c.Labels) }

// AssembleChart joins measurements with their growth bands, preserving the
// input order.
func AssembleChart(measurements []domain.Measurement, table *domain.GrowthTable, birth time.Time, unit domain.Unit) (ChartData, error) {
	n := len(measurements)
	data := ChartData{
		Unit:    unit,
		Labels:  make([]string, 0, n),
		Weights: make([]float64, 0, n),
		BandMin: make([]float64, 0, n),
		BandMax: make([]float64, 0, n),
		Days:    make([]time.Time, 0, n),
	}
	for _, m := range measurements {
		day, err := m.Day()
		if err != nil {
			return ChartData{}, err
		}
		band, err := table.Resolve(day, birth)
		if err != nil {
			return ChartData{}, err
		}
		data.Labels = append(data.Labels, day.Format(LabelLayout))
		data.Weights = append(data.Weights, unit.FromKilograms(m.Weight))
		data.BandMin = append(data.BandMin, unit.FromKilograms(band.Min))
		data.BandMax = append(data.BandMax, unit.FromKilograms(band.Max))
		data.Days = append(data.Days, day)
	}
	return data, nil
}

// ChartService encapsulates chart data retrieval use cases.
type ChartService struct {
	repo  domain.MeasurementRepository
	table *domain.GrowthTable
	birth time.Time
}

// NewChartService creates a ChartService backed by the given repository.
func NewChartService(repo domain.MeasurementRepository, table *domain.GrowthTable, birth time.Time) *ChartService {
	return &ChartService{repo: repo, table: table, birth: birth}
}

// GetChart loads every measurement and assembles the chart series in unit.
func (s *ChartService) GetChart(ctx context.Context, unit domain.Unit) (ChartData, error) {
	measurements, err := s.repo.ListMeasurements(ctx)
	if err != nil {
		return ChartData{}, err
	}
	return AssembleChart(measurements, s.table, s.birth, unit)
}

