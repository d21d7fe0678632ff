package render

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yumyai/mbdash/pkg/db"
	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/model"
)

func TestSunsetColor(t *testing.T) {
	assert.Equal(t, "#F3E79B", sunsetColor(0, 0, 10))
	assert.Equal(t, "#5C53A5", sunsetColor(10, 0, 10))
	assert.Equal(t, "#5C53A5", sunsetColor(99, 0, 10), "clamped above")
	assert.Equal(t, "#F3E79B", sunsetColor(5, 5, 5), "flat range maps to the low end")
	assert.Equal(t, missingColor, sunsetColor(math.NaN(), 0, 10))
	// Midpoint of seven stops is the fourth stop.
	assert.Equal(t, "#EB7F86", sunsetColor(5, 0, 10))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1,234", formatValue(1234))
	assert.Equal(t, "0.125", formatValue(0.125))
	assert.Equal(t, "n/a", formatValue(math.NaN()))
}

func TestBuildQuery(t *testing.T) {
	assert.Equal(t, "/graphs", string(buildQuery("/graphs", "file", "")))
	assert.Equal(t, "/?file=a+b.tsv&rank=phylum", string(buildQuery("/", "rank", "phylum", "file", "a b.tsv")))
}

func TestNewHeatmapNumberedRows(t *testing.T) {
	tbl := &model.AbundanceTable{
		IndexName: "Taxa",
		Rows:      []string{"a", "b", "c"},
		Columns:   []string{"S1", "S2"},
		Values:    [][]float64{{1, 2}, {3, math.NaN()}, {0, 4}},
	}

	hm := NewHeatmap(tbl, []int{2, 0, 1}, []int{1, 0}, true)

	assert.Equal(t, []string{"S2", "S1"}, hm.Columns)
	assert.Equal(t, 0.0, hm.Min)
	assert.Equal(t, 4.0, hm.Max)
	require.Len(t, hm.Rows, 3)
	assert.Equal(t, "3", hm.Rows[0].Label)
	assert.Equal(t, "c", hm.Rows[0].Title)
	assert.Equal(t, []float64{4, 0}, []float64{hm.Rows[0].Cells[0].Value, hm.Rows[0].Cells[1].Value})
	assert.Equal(t, missingColor, hm.Rows[2].Cells[0].Color)
	assert.Equal(t, []string{"a", "b", "c"}, hm.Legend())

	plain := NewHeatmap(tbl, nil, nil, false)
	assert.Equal(t, "a", plain.Rows[0].Label)
	assert.Equal(t, []string{"S1", "S2"}, plain.Columns)
}

func TestBarplotLegendCycles(t *testing.T) {
	rows := make([]string, len(seriesPalette)+1)
	for i := range rows {
		rows[i] = string(rune('a' + i))
	}
	legend := BarplotLegend(rows)
	require.Len(t, legend, len(rows))
	assert.Equal(t, legend[0].Color, legend[len(seriesPalette)].Color)
	assert.Equal(t, "#1F77B4", legend[0].Color)
}

func TestRenderOverviewPage(t *testing.T) {
	var buf bytes.Buffer
	err := RenderOverviewPage(&buf, OverviewData{
		Layout:    Layout{Message: "Please upload data in the sidebar"},
		PageSizes: model.PageSizes,
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Please upload data in the sidebar")
	assert.Contains(t, out, `action="/upload"`)
}

func TestRenderLayoutListsUploads(t *testing.T) {
	var buf bytes.Buffer
	err := RenderGraphsPage(&buf, GraphsData{
		Layout: Layout{
			Files:    []db.UploadInfo{{Name: "a_metaphlan.tsv", Size: 2048}, {Name: "b_genefamilies.tsv", Size: 10}},
			Selected: "b_genefamilies.tsv",
			Message:  "Please upload data in the sidebar",
		},
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "a_metaphlan.tsv")
	assert.Contains(t, out, "b_genefamilies.tsv")
	assert.Contains(t, out, "2.0 kB")
}

func TestRenderStatisticsNeedsMetadata(t *testing.T) {
	var buf bytes.Buffer
	err := RenderStatisticsPage(&buf, StatisticsData{
		Layout:        Layout{Selected: "x_metaphlan.tsv"},
		Kind:          model.KindTaxonomic,
		NeedsMetadata: true,
		DiffMessage:   "Please select two different columns",
	})
	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, `action="/metadata"`)
	assert.Contains(t, out, "Please select two different columns")
	assert.Equal(t, 2, strings.Count(out, "requires metadata file"))
}

func TestWriteCharts(t *testing.T) {
	bp := &model.Barplot{
		YTitle: "Relative abundance",
		Table: &model.AbundanceTable{
			Rows:    []string{"a", "b"},
			Columns: []string{"S1", "S2", "S3"},
			Values:  [][]float64{{1, 0, 2}, {3, 0, 2}},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteBarplotPNG(&buf, bp))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	empty := &model.Barplot{Table: &model.AbundanceTable{Rows: []string{"a"}, Columns: []string{"S1"}, Values: [][]float64{{0}}}}
	assert.ErrorIs(t, WriteBarplotPNG(&bytes.Buffer{}, empty), ErrNothingToPlot)

	groups := []diversity.AlphaGroup{
		{Name: "gut", Values: []float64{1.2, 1.5}, Median: 1.35},
		{Name: "skin", Values: []float64{0.4}, Median: 0.4},
	}
	buf.Reset()
	require.NoError(t, WriteAlphaPNG(&buf, groups, diversity.Shannon))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
	assert.ErrorIs(t, WriteAlphaPNG(&bytes.Buffer{}, nil, diversity.Shannon), ErrNothingToPlot)

	dm, err := diversity.Beta([]string{"S1", "S2", "S3"}, [][]float64{{1, 0, 3}, {2, 2, 0}, {0, 5, 1}}, diversity.BrayCurtis)
	require.NoError(t, err)
	ord, err := diversity.Ordinate(dm)
	require.NoError(t, err)
	buf.Reset()
	require.NoError(t, WritePCoAPNG(&buf, ord, diversity.BrayCurtis))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
