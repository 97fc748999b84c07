// Package chartpng renders the growth chart as a PNG image.
package chartpng

import (
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"growthchart/internal/app"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no measurements to plot")

// Size of the rendered image in pixels.
const (
	Width  = 960
	Height = 480
)

func lineStyle(col drawing.Color, dashed bool) chart.Style {
	st := chart.Style{
		StrokeColor: col,
		StrokeWidth: 2,
		DotColor:    col,
		DotWidth:    3,
	}
	if dashed {
		st.StrokeDashArray = []float64{6, 4}
		st.DotWidth = 0
	}
	return st
}

// Render writes data as a PNG line chart: recorded weight plus the lower and
// upper growth band.
func Render(w io.Writer, data app.ChartData) error {
	if data.Len() == 0 {
		return ErrNoData
	}

	ch := chart.Chart{
		Title:      "Weight vs growth band",
		Width:      Width,
		Height:     Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat(app.LabelLayout),
		},
		YAxis: chart.YAxis{
			Name:  string(data.Unit),
			Range: yRange(data),
		},
		Series: []chart.Series{
			chart.TimeSeries{Name: "Min", XValues: data.Days, YValues: data.BandMin, Style: lineStyle(chart.ColorAlternateGray, true)},
			chart.TimeSeries{Name: "Max", XValues: data.Days, YValues: data.BandMax, Style: lineStyle(chart.ColorRed, true)},
			chart.TimeSeries{Name: "Weight", XValues: data.Days, YValues: data.Weights, Style: lineStyle(chart.ColorBlue, false)},
		},
	}
	if r := xRange(data.Days); r != nil {
		ch.XAxis.Range = r
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return nil
}

// xRange pads a single day by one day on each side; go-chart refuses a zero
// width range.
func xRange(days []time.Time) *chart.ContinuousRange {
	first, last := days[0], days[len(days)-1]
	if !first.Equal(last) {
		return nil
	}
	return &chart.ContinuousRange{
		Min: chart.TimeToFloat64(first.AddDate(0, 0, -1)),
		Max: chart.TimeToFloat64(last.AddDate(0, 0, 1)),
	}
}

func yRange(data app.ChartData) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, series := range [][]float64{data.Weights, data.BandMin, data.BandMax} {
		for _, v := range series {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = 0.5
	}
	return &chart.ContinuousRange{Min: math.Max(0, lo-pad), Max: hi + pad}
}
