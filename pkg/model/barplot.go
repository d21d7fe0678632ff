package model

import (
	"cmp"
	"fmt"
	"slices"
)

// BarplotTopRows are the row counts offered for gene family bar plots.
var BarplotTopRows = []int{10, 25, 50, 100}

type BarplotOptions struct {
	Rank    Rank
	Column  string // gene families only
	TopRows int    // gene families only
}

// Barplot is the input of a stacked bar chart: one bar per sample, one stack
// segment per row.
type Barplot struct {
	Table  *AbundanceTable
	YTitle string
}

// BarplotData selects the rows and columns plotted for a table kind.
// Gene family tables are too wide to plot whole, so a single sample column is
// shown with its top rows.
func BarplotData(t *AbundanceTable, kind TableKind, opts BarplotOptions) (*Barplot, error) {
	var (
		out   *AbundanceTable
		title = "Relative abundance [%]"
	)
	switch kind {
	case KindTaxonomic:
		out = Classify(t, opts.Rank)
	case KindPathAbundance:
		out = Normalize(Classify(t, RankLevel1))
	case KindGeneFamilies:
		sel, err := Classify(t, opts.Rank).SelectColumns(opts.Column)
		if err != nil {
			return nil, fmt.Errorf("barplot: %w", err)
		}
		sorted, err := SortBy(sel, opts.Column, false)
		if err != nil {
			return nil, fmt.Errorf("barplot: %w", err)
		}
		out = sorted.Head(opts.TopRows)
		title = "Absolute abundance [RPKs]"
	default:
		return nil, fmt.Errorf("barplot: not available for %s tables", kind)
	}
	return &Barplot{Table: stackOrder(out), YTitle: title}, nil
}

// stackOrder sorts rows by label descending and samples ascending, the order
// the chart stacks and lays them out.
func stackOrder(t *AbundanceTable) *AbundanceTable {
	rows := make([]int, t.NRows())
	for i := range rows {
		rows[i] = i
	}
	slices.SortStableFunc(rows, func(a, b int) int { return cmp.Compare(t.Rows[b], t.Rows[a]) })

	cols := make([]int, t.NCols())
	for j := range cols {
		cols[j] = j
	}
	slices.SortStableFunc(cols, func(a, b int) int { return cmp.Compare(t.Columns[a], t.Columns[b]) })

	return t.selectRows(rows).selectColumns(cols)
}
