package model

import (
	"fmt"
	"math"
)

// DifferenceColumn holds |a-b| in the output of Differential.
const DifferenceColumn = "Difference"

// DifferentialTopRows are the row counts offered for the comparison heatmap.
var DifferentialTopRows = []int{10, 25, 50}

// Differential compares two samples: it returns their two columns plus
// DifferenceColumn, ordered by the difference (largest first), limited to the
// first topN rows.
func Differential(t *AbundanceTable, first, second string, topN int) (*AbundanceTable, error) {
	if first == second {
		return nil, ErrSameSample
	}
	pair, err := t.SelectColumns(first, second)
	if err != nil {
		return nil, fmt.Errorf("differential: %w", err)
	}

	pair.Columns = append(pair.Columns, DifferenceColumn)
	for i, row := range pair.Values {
		pair.Values[i] = append(row, math.Abs(row[0]-row[1]))
	}

	sorted, err := SortBy(pair, DifferenceColumn, false)
	if err != nil {
		return nil, err
	}
	return sorted.Head(topN), nil
}
