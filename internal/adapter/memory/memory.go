// Package memory implements an in-memory repository for development and testing.
package memory

import (
	"context"
	"sort"
	"sync"

	"growthchart/internal/domain"
)

// DB implements an in-memory measurement store keyed by date.
type DB struct {
	mu      sync.Mutex
	weights map[string]float64
}

// New creates a new in-memory database.
func New() *DB {
	return &DB{weights: make(map[string]float64)}
}

// Ensure interfaces are met.
var _ domain.MeasurementRepository = (*DB)(nil)

// UpsertMeasurement stores weight for date, replacing any previous value.
func (db *DB) UpsertMeasurement(_ context.Context, date string, weight float64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.weights[date] = weight
	return nil
}

// ListMeasurements returns all measurements sorted by date.
func (db *DB) ListMeasurements(_ context.Context) ([]domain.Measurement, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	out := make([]domain.Measurement, 0, len(db.weights))
	for date, w := range db.weights {
		out = append(out, domain.Measurement{Date: date, Weight: w})
	}
	// YYYY-MM-DD sorts lexically in date order.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

// CountMeasurements returns the number of stored days.
func (db *DB) CountMeasurements(_ context.Context) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.weights), nil
}

// Migrate is a no-op; there is no schema.
func (db *DB) Migrate(_ context.Context) ([]string, error) { return nil, nil }

// Pending always reports an up-to-date schema.
func (db *DB) Pending(_ context.Context) ([]string, error) { return nil, nil }

// Seed stores seed only when the store is empty and reports how many rows
// were written.
func (db *DB) Seed(_ context.Context, seed []domain.Measurement) (int, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if len(db.weights) > 0 {
		return 0, nil
	}
	for _, m := range seed {
		db.weights[m.Date] = m.Weight
	}
	return len(seed), nil
}

// Close is a no-op.
func (db *DB) Close() error { return nil }
