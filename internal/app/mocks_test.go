package app_test

import (
	"context"

	"growthchart/internal/domain"
)

type mockMeasurementRepo struct {
	upsertFn func(ctx context.Context, date string, weight float64) error
	listFn   func(ctx context.Context) ([]domain.Measurement, error)
	countFn  func(ctx context.Context) (int, error)
}

func (m *mockMeasurementRepo) UpsertMeasurement(ctx context.Context, date string, weight float64) error {
	if m.upsertFn != nil {
		return m.upsertFn(ctx, date, weight)
	}
	return nil
}

func (m *mockMeasurementRepo) ListMeasurements(ctx context.Context) ([]domain.Measurement, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockMeasurementRepo) CountMeasurements(ctx context.Context) (int, error) {
	if m.countFn != nil {
		return m.countFn(ctx)
	}
	return 0, nil
}

type mockMirror struct {
	appendFn func(ctx context.Context, m domain.Measurement) error
}

func (m *mockMirror) AppendMeasurement(ctx context.Context, ms domain.Measurement) error {
	if m.appendFn != nil {
		return m.appendFn(ctx, ms)
	}
	return nil
}
