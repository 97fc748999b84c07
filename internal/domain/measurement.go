// Package domain contains the core business entities and interfaces.
package domain

import (
	"context"
	"errors"
	"time"
)

// DayLayout is the storage and wire format for measurement dates.
const DayLayout = "2006-01-02"

// ErrInvalidWeight indicates a weight that is not a positive number.
var ErrInvalidWeight = errors.New("weight must be a positive number")

// Measurement is a single weight recorded for a calendar day.
type Measurement struct {
	Date   string  `json:"date" csv:"date"`
	Weight float64 `json:"weight" csv:"weight_kg"`
}

// Day parses the measurement date as a calendar day at UTC midnight.
func (m Measurement) Day() (time.Time, error) {
	return ParseDay(m.Date)
}

// ParseDay parses a YYYY-MM-DD string as a calendar day at UTC midnight.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, s, time.UTC)
}

// DayOf returns the calendar day of t in loc, formatted as YYYY-MM-DD.
func DayOf(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayLayout)
}

// MeasurementRepository is the port for measurement persistence. Implementations
// assume validated input.
type MeasurementRepository interface {
	// UpsertMeasurement inserts a row for date or replaces its weight.
	UpsertMeasurement(ctx context.Context, date string, weight float64) error
	// ListMeasurements returns every row ordered ascending by date.
	ListMeasurements(ctx context.Context) ([]Measurement, error)
	CountMeasurements(ctx context.Context) (int, error)
}

// Mirror is the port for the external spreadsheet backup.
type Mirror interface {
	AppendMeasurement(ctx context.Context, m Measurement) error
}

// NoopMirror discards every measurement.
type NoopMirror struct{}

// AppendMeasurement implements Mirror.
func (NoopMirror) AppendMeasurement(context.Context, Measurement) error { return nil }
