package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"github.com/yumyai/mbdash/logger"
	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/model"
	"go.uber.org/zap"
)

const (
	chartWidth  = 1024
	chartHeight = 640
)

var ErrNothingToPlot = errors.New("nothing to plot")

// pointStyle renders points only, no connecting line.
func pointStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: chart.Disabled,
		DotWidth:    5,
		DotColor:    col,
	}
}

// paddedRange spans values with a margin so a single point, or an axis with
// no variance, still gets a valid range.
func paddedRange(values ...[]float64) *chart.ContinuousRange {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, vs := range values {
		for _, v := range vs {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 1
	}
	pad := (hi - lo) * 0.1
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.1, 0.1)
	}
	return &chart.ContinuousRange{Min: lo - pad, Max: hi + pad}
}

// WriteBarplotPNG draws one stacked bar per sample. Segments follow the row
// order of bp.Table and take their colours from BarplotLegend. Each bar is
// scaled to its own total.
func WriteBarplotPNG(w io.Writer, bp *model.Barplot) error {
	t := bp.Table
	var bars []chart.StackedBar
	for j, sample := range t.Columns {
		bar := chart.StackedBar{Name: sample}
		var total float64
		for i, row := range t.Rows {
			v := t.Values[i][j]
			if math.IsNaN(v) {
				v = 0
			}
			total += v
			bar.Values = append(bar.Values, chart.Value{
				Label: row,
				Value: v,
				Style: chart.Style{FillColor: seriesColor(i), StrokeColor: seriesColor(i)},
			})
		}
		if total == 0 {
			logger.Debug("Skipping empty bar", zap.String("sample", sample))
			continue
		}
		bars = append(bars, bar)
	}
	if len(bars) == 0 {
		return ErrNothingToPlot
	}

	c := chart.StackedBarChart{
		Title:      bp.YTitle,
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 60}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		BarSpacing: 20,
		Bars:       bars,
	}
	return c.Render(chart.PNG, w)
}

// WriteAlphaPNG draws a strip plot of diversity values per metadata group,
// with each group's median as a short horizontal bar.
func WriteAlphaPNG(w io.Writer, groups []diversity.AlphaGroup, measure diversity.AlphaMeasure) error {
	if len(groups) == 0 {
		return ErrNothingToPlot
	}

	var (
		series []chart.Series
		ticks  []chart.Tick
		all    [][]float64
	)
	for g, grp := range groups {
		x := float64(g + 1)
		xs := make([]float64, len(grp.Values))
		for k := range xs {
			xs[k] = x + jitter(k, len(xs))
		}
		series = append(series, chart.ContinuousSeries{
			Name:    grp.Name,
			XValues: xs,
			YValues: grp.Values,
			Style:   pointStyle(seriesColor(g)),
		})
		series = append(series, chart.ContinuousSeries{
			Name:    grp.Name + " median",
			XValues: []float64{x - 0.25, x + 0.25},
			YValues: []float64{grp.Median, grp.Median},
			Style:   chart.Style{StrokeColor: seriesColor(g), StrokeWidth: 2},
		})
		ticks = append(ticks, chart.Tick{Value: x, Label: grp.Name})
		all = append(all, grp.Values)
	}

	c := chart.Chart{
		Title:      fmt.Sprintf("%s diversity", measure),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Range: &chart.ContinuousRange{Min: 0.4, Max: float64(len(groups)) + 0.6},
			Ticks: ticks,
		},
		YAxis:  chart.YAxis{Name: measure.String(), Range: paddedRange(all...)},
		Series: series,
	}
	return c.Render(chart.PNG, w)
}

// jitter spreads k of n points across ±0.15 around their group centre.
func jitter(k, n int) float64 {
	if n <= 1 {
		return 0
	}
	return -0.15 + 0.3*float64(k)/float64(n-1)
}

// WritePCoAPNG plots samples on the first two principal coordinates.
func WritePCoAPNG(w io.Writer, ord *diversity.Ordination, measure diversity.BetaMeasure) error {
	if ord == nil || len(ord.IDs) == 0 {
		return ErrNothingToPlot
	}
	xs, ys := ord.Axis(0), ord.Axis(1)

	labels := make([]chart.Value2, len(ord.IDs))
	for i, id := range ord.IDs {
		labels[i] = chart.Value2{XValue: xs[i], YValue: ys[i], Label: id}
	}

	c := chart.Chart{
		Title:      fmt.Sprintf("PCoA of %s distance matrix", measure),
		Width:      chartWidth,
		Height:     chartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  fmt.Sprintf("PC1 (%.2f%%)", ord.Proportion(0)*100),
			Range: paddedRange(xs),
		},
		YAxis: chart.YAxis{
			Name:  fmt.Sprintf("PC2 (%.2f%%)", ord.Proportion(1)*100),
			Range: paddedRange(ys),
		},
		Series: []chart.Series{
			chart.ContinuousSeries{Name: "samples", XValues: xs, YValues: ys, Style: pointStyle(seriesColor(0))},
			chart.AnnotationSeries{Annotations: labels},
		},
	}
	return c.Render(chart.PNG, w)
}
