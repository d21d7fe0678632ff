package render

import (
	"math"
	"strconv"

	"github.com/yumyai/mbdash/pkg/model"
)

type HeatmapCell struct {
	Value float64
	Color string
}

type HeatmapRow struct {
	Label string
	Title string // full row name, shown on hover
	Cells []HeatmapCell
}

// Heatmap is a coloured HTML table.
type Heatmap struct {
	Columns []string
	Rows    []HeatmapRow
	Min     float64
	Max     float64
	legend  []string
}

// NewHeatmap lays out t in the given row and column order (nil keeps the
// table order). When numbered is set each row is labelled with its 1-based
// position in t, so the labels still point into Legend after clustering
// reorders the rows; otherwise rows show their names.
func NewHeatmap(t *model.AbundanceTable, rowOrder, colOrder []int, numbered bool) *Heatmap {
	rowOrder = identityIfNil(rowOrder, t.NRows())
	colOrder = identityIfNil(colOrder, t.NCols())

	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range t.Values {
		for _, v := range row {
			if math.IsNaN(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 1) {
		lo, hi = 0, 0
	}

	hm := &Heatmap{Min: lo, Max: hi, legend: t.Rows}
	for _, j := range colOrder {
		hm.Columns = append(hm.Columns, t.Columns[j])
	}
	for _, i := range rowOrder {
		row := HeatmapRow{Label: t.Rows[i], Title: t.Rows[i]}
		if numbered {
			row.Label = strconv.Itoa(i + 1)
		}
		for _, j := range colOrder {
			v := t.Values[i][j]
			row.Cells = append(row.Cells, HeatmapCell{Value: v, Color: sunsetColor(v, lo, hi)})
		}
		hm.Rows = append(hm.Rows, row)
	}
	return hm
}

// Legend lists the row names in table order; entry i is row label i+1.
func (h *Heatmap) Legend() []string {
	return h.legend
}

func identityIfNil(order []int, n int) []int {
	if order != nil {
		return order
	}
	order = make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}
