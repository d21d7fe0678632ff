package render

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// sunsetStops is the colour scale of the heatmaps, low to high.
var sunsetStops = []drawing.Color{
	drawing.ColorFromHex("F3E79B"),
	drawing.ColorFromHex("FAC484"),
	drawing.ColorFromHex("F8A07E"),
	drawing.ColorFromHex("EB7F86"),
	drawing.ColorFromHex("CE6693"),
	drawing.ColorFromHex("A059A0"),
	drawing.ColorFromHex("5C53A5"),
}

// missingColor marks NaN cells (samples whose column summed to zero).
const missingColor = "#CCCCCC"

// sunsetColor maps value within [lo, hi] onto sunsetStops.
func sunsetColor(value, lo, hi float64) string {
	if math.IsNaN(value) {
		return missingColor
	}
	t := 0.0
	if hi > lo {
		t = (value - lo) / (hi - lo)
	}
	t = math.Min(math.Max(t, 0), 1)

	pos := t * float64(len(sunsetStops)-1)
	i := int(math.Floor(pos))
	if i >= len(sunsetStops)-1 {
		return hexColor(sunsetStops[len(sunsetStops)-1])
	}
	frac := pos - float64(i)
	a, b := sunsetStops[i], sunsetStops[i+1]
	return fmt.Sprintf("#%02X%02X%02X",
		int(math.Round(lerp(float64(a.R), float64(b.R), frac))),
		int(math.Round(lerp(float64(a.G), float64(b.G), frac))),
		int(math.Round(lerp(float64(a.B), float64(b.B), frac))),
	)
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func hexColor(c drawing.Color) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// seriesPalette colours bar segments and scatter groups. It cycles.
var seriesPalette = []drawing.Color{
	drawing.ColorFromHex("1F77B4"),
	drawing.ColorFromHex("FF7F0E"),
	drawing.ColorFromHex("2CA02C"),
	drawing.ColorFromHex("D62728"),
	drawing.ColorFromHex("9467BD"),
	drawing.ColorFromHex("8C564B"),
	drawing.ColorFromHex("E377C2"),
	drawing.ColorFromHex("7F7F7F"),
	drawing.ColorFromHex("BCBD22"),
	drawing.ColorFromHex("17BECF"),
	drawing.ColorFromHex("AEC7E8"),
	drawing.ColorFromHex("FFBB78"),
	drawing.ColorFromHex("98DF8A"),
	drawing.ColorFromHex("FF9896"),
	drawing.ColorFromHex("C5B0D5"),
	drawing.ColorFromHex("C49C94"),
	drawing.ColorFromHex("F7B6D2"),
	drawing.ColorFromHex("C7C7C7"),
	drawing.ColorFromHex("DBDB8D"),
	drawing.ColorFromHex("9EDAE5"),
}

func seriesColor(i int) drawing.Color {
	return seriesPalette[i%len(seriesPalette)]
}

// LegendEntry pairs a series label with its swatch colour.
type LegendEntry struct {
	Label string
	Color string
}

// BarplotLegend lists the stack segments of a bar plot in draw order with the
// colours WriteBarplotPNG uses.
func BarplotLegend(rows []string) []LegendEntry {
	out := make([]LegendEntry, len(rows))
	for i, r := range rows {
		out[i] = LegendEntry{Label: r, Color: hexColor(seriesColor(i))}
	}
	return out
}
