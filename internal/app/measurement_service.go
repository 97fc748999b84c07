// Package app holds the application services and business logic.
package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	"growthchart/internal/domain"
)

// MeasurementService records weights and keeps the spreadsheet backup in step.
type MeasurementService struct {
	repo          domain.MeasurementRepository
	mirror        domain.Mirror
	mirrorTimeout time.Duration
	birth         time.Time
	loc           *time.Location
	log           logrus.FieldLogger
	now           func() time.Time
}

// MeasurementOption customises a MeasurementService.
type MeasurementOption func(*MeasurementService)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) MeasurementOption {
	return func(s *MeasurementService) { s.now = now }
}

// WithLocation sets the time zone that decides the calendar day of a submission.
func WithLocation(loc *time.Location) MeasurementOption {
	return func(s *MeasurementService) { s.loc = loc }
}

// WithMirrorTimeout bounds each spreadsheet append.
func WithMirrorTimeout(d time.Duration) MeasurementOption {
	return func(s *MeasurementService) { s.mirrorTimeout = d }
}

// WithLogger sets the logger used for mirror failures.
func WithLogger(l logrus.FieldLogger) MeasurementOption {
	return func(s *MeasurementService) { s.log = l }
}

// NewMeasurementService creates a MeasurementService. A nil mirror disables
// the backup.
func NewMeasurementService(repo domain.MeasurementRepository, mirror domain.Mirror, birth time.Time, opts ...MeasurementOption) *MeasurementService {
	if mirror == nil {
		mirror = domain.NoopMirror{}
	}
	s := &MeasurementService{
		repo:          repo,
		mirror:        mirror,
		mirrorTimeout: 5 * time.Second,
		birth:         birth,
		loc:           time.Local,
		log:           logrus.StandardLogger(),
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records weight (kilograms) for today and mirrors it. The returned
// error is nil whenever the local store accepted the row, whatever happened
// to the mirror.
func (s *MeasurementService) Submit(ctx context.Context, weight float64) (domain.Measurement, error) {
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return domain.Measurement{}, domain.ErrInvalidWeight
	}
	today := domain.DayOf(s.now(), s.loc)
	day, err := domain.ParseDay(today)
	if err != nil {
		return domain.Measurement{}, err
	}
	if day.Before(s.birth) {
		return domain.Measurement{}, fmt.Errorf("%s: %w", today, domain.ErrBeforeBirth)
	}

	m := domain.Measurement{Date: today, Weight: weight}
	if err := s.repo.UpsertMeasurement(ctx, m.Date, m.Weight); err != nil {
		return domain.Measurement{}, fmt.Errorf("store measurement: %w", err)
	}

	s.mirrorMeasurement(ctx, m)
	return m, nil
}

// mirrorMeasurement appends m to the spreadsheet. Failures are logged and
// dropped; the append is not retried and is not cancelled when the caller's
// request goes away.
func (s *MeasurementService) mirrorMeasurement(ctx context.Context, m domain.Measurement) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.mirrorTimeout)
	defer cancel()

	if err := s.mirror.AppendMeasurement(ctx, m); err != nil {
		s.log.WithFields(logrus.Fields{
			"date":   m.Date,
			"weight": m.Weight,
		}).WithError(err).Warn("spreadsheet mirror failed")
	}
}

// List returns every measurement in chronological order.
func (s *MeasurementService) List(ctx context.Context) ([]domain.Measurement, error) {
	return s.repo.ListMeasurements(ctx)
}
