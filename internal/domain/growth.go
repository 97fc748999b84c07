package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// ErrBeforeBirth indicates a measurement date that predates the birth date.
var ErrBeforeBirth = errors.New("date is before the birth date")

// GrowthInterval is the healthy weight band, in kilograms, for one week of age.
type GrowthInterval struct {
	Week int     `json:"week" yaml:"week"`
	Min  float64 `json:"min" yaml:"min"`
	Max  float64 `json:"max" yaml:"max"`
}

// GrowthTable maps week index to growth interval. It is immutable once built.
type GrowthTable struct {
	weeks []GrowthInterval
}

// NewGrowthTable validates intervals and builds a table. Weeks must be
// contiguous from 0 and every interval must satisfy min <= max; the input
// order does not matter.
func NewGrowthTable(intervals []GrowthInterval) (*GrowthTable, error) {
	if len(intervals) == 0 {
		return nil, errors.New("growth table is empty")
	}
	weeks := make([]GrowthInterval, len(intervals))
	copy(weeks, intervals)
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Week < weeks[j].Week })

	for i, iv := range weeks {
		if iv.Week != i {
			return nil, fmt.Errorf("growth table: week %d missing or duplicated (got %d)", i, iv.Week)
		}
		if iv.Min <= 0 || iv.Max <= 0 {
			return nil, fmt.Errorf("growth table: week %d has non-positive bound", iv.Week)
		}
		if iv.Min > iv.Max {
			return nil, fmt.Errorf("growth table: week %d has min %.2f > max %.2f", iv.Week, iv.Min, iv.Max)
		}
	}
	return &GrowthTable{weeks: weeks}, nil
}

// MaxWeek returns the last defined week.
func (t *GrowthTable) MaxWeek() int {
	return len(t.weeks) - 1
}

// Intervals returns a copy of the table rows ordered by week.
func (t *GrowthTable) Intervals() []GrowthInterval {
	out := make([]GrowthInterval, len(t.weeks))
	copy(out, t.weeks)
	return out
}

// Lookup returns the interval for week. Weeks past the end of the table get the
// last defined interval; negative weeks are rejected.
func (t *GrowthTable) Lookup(week int) (GrowthInterval, error) {
	if week < 0 {
		return GrowthInterval{}, fmt.Errorf("week %d: %w", week, ErrBeforeBirth)
	}
	if week > t.MaxWeek() {
		week = t.MaxWeek()
	}
	return t.weeks[week], nil
}

// Resolve returns the growth band for a measurement taken on date by a child
// born on birth.
func (t *GrowthTable) Resolve(date, birth time.Time) (GrowthInterval, error) {
	return t.Lookup(WeekIndex(date, birth))
}

// WeekIndex returns the number of complete weeks between birth and date,
// rounding toward negative infinity. Both are reduced to calendar days first.
func WeekIndex(date, birth time.Time) int {
	days := daysBetween(birth, date)
	w := days / 7
	if days%7 != 0 && days < 0 {
		w--
	}
	return w
}

func daysBetween(from, to time.Time) int {
	f := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	t := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
