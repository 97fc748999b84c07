package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"growthchart/internal/domain"
)

func TestMeasurementRepository(t *testing.T) {
	db := New()
	ctx := context.Background()

	for _, m := range []domain.Measurement{
		{Date: "2025-09-02", Weight: 3.50},
		{Date: "2025-08-25", Weight: 3.55},
		{Date: "2025-08-30", Weight: 3.45},
	} {
		if err := db.UpsertMeasurement(ctx, m.Date, m.Weight); err != nil {
			t.Fatalf("UpsertMeasurement: %v", err)
		}
	}

	rows, err := db.ListMeasurements(ctx)
	if err != nil {
		t.Fatalf("ListMeasurements: %v", err)
	}
	want := []string{"2025-08-25", "2025-08-30", "2025-09-02"}
	if len(rows) != len(want) {
		t.Fatalf("expected %d rows, got %d", len(want), len(rows))
	}
	for i, d := range want {
		if rows[i].Date != d {
			t.Errorf("row %d: expected %s, got %s", i, d, rows[i].Date)
		}
	}

	// Upsert replaces in place.
	if err := db.UpsertMeasurement(ctx, "2025-08-30", 3.48); err != nil {
		t.Fatal(err)
	}
	n, _ := db.CountMeasurements(ctx)
	if n != 3 {
		t.Errorf("expected 3 rows after upsert, got %d", n)
	}
	rows, _ = db.ListMeasurements(ctx)
	if rows[1].Weight != 3.48 {
		t.Errorf("expected 3.48, got %f", rows[1].Weight)
	}
}

func TestSeedOnlyWhenEmpty(t *testing.T) {
	db := New()
	ctx := context.Background()
	seed := []domain.Measurement{{Date: "2025-08-25", Weight: 3.55}, {Date: "2025-08-30", Weight: 3.45}}

	n, err := db.Seed(ctx, seed)
	if err != nil || n != 2 {
		t.Fatalf("Seed: n=%d err=%v", n, err)
	}
	n, err = db.Seed(ctx, []domain.Measurement{{Date: "2025-09-10", Weight: 4}})
	if err != nil || n != 0 {
		t.Fatalf("second Seed: n=%d err=%v", n, err)
	}
	if c, _ := db.CountMeasurements(ctx); c != 2 {
		t.Fatalf("expected 2 rows, got %d", c)
	}
}

func TestConcurrentUpsertSameDay(t *testing.T) {
	db := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = db.UpsertMeasurement(ctx, "2025-09-02", 3+float64(i)/100)
		}(i)
	}
	wg.Wait()

	rows, _ := db.ListMeasurements(ctx)
	if len(rows) != 1 {
		t.Fatalf("expected a single row, got %d: %v", len(rows), fmt.Sprint(rows))
	}
}
