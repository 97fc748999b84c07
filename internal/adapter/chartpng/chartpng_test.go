package chartpng_test

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"growthchart/internal/adapter/chartpng"
	"growthchart/internal/app"
	"growthchart/internal/domain"
)

func TestRender_PNG(t *testing.T) {
	data := app.ChartData{
		Unit:    domain.Kilograms,
		Labels:  []string{"25/08/2025", "30/08/2025", "02/09/2025"},
		Weights: []float64{3.55, 3.45, 3.50},
		BandMin: []float64{2.5, 2.5, 2.7},
		BandMax: []float64{4.5, 4.5, 4.8},
		Days: []time.Time{
			time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 8, 30, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 9, 2, 0, 0, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	require.NoError(t, chartpng.Render(&buf, data))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, chartpng.Width, img.Bounds().Dx())
	assert.Equal(t, chartpng.Height, img.Bounds().Dy())
}

func TestRender_SinglePointFlatBand(t *testing.T) {
	data := app.ChartData{
		Unit:    domain.Kilograms,
		Labels:  []string{"25/08/2025"},
		Weights: []float64{3.45},
		BandMin: []float64{3.45},
		BandMax: []float64{3.45},
		Days:    []time.Time{time.Date(2025, 8, 25, 0, 0, 0, 0, time.UTC)},
	}

	var buf bytes.Buffer
	require.NoError(t, chartpng.Render(&buf, data))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestRender_Empty(t *testing.T) {
	err := chartpng.Render(&bytes.Buffer{}, app.ChartData{})
	assert.True(t, errors.Is(err, chartpng.ErrNoData))
}
