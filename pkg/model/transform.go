package model

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"sort"
)

// Normalize rescales every column to percent of its column sum. A column that
// sums to zero becomes NaN; that marks an empty sample and is left for the
// caller to show or mask.
func Normalize(t *AbundanceTable) *AbundanceTable {
	out := t.Clone()
	sums := make([]float64, len(t.Columns))
	for _, row := range t.Values {
		for j, v := range row {
			sums[j] += v
		}
	}
	for _, row := range out.Values {
		for j, v := range row {
			row[j] = v / sums[j] * 100
		}
	}
	return out
}

// WithMeanAbundance appends (or refreshes) MeanAbundanceColumn with the mean
// of every row over the sample columns only.
func WithMeanAbundance(t *AbundanceTable) *AbundanceTable {
	means := t.RowMeans()
	base := WithoutMeanAbundance(t)
	base.Columns = append(base.Columns, MeanAbundanceColumn)
	for i := range base.Values {
		base.Values[i] = append(base.Values[i], means[i])
	}
	return base
}

// WithoutMeanAbundance drops MeanAbundanceColumn. Missing column is a no-op.
func WithoutMeanAbundance(t *AbundanceTable) *AbundanceTable {
	j := t.ColumnIndex(MeanAbundanceColumn)
	if j < 0 {
		return t.Clone()
	}
	keep := make([]int, 0, len(t.Columns)-1)
	for k := range t.Columns {
		if k != j {
			keep = append(keep, k)
		}
	}
	return t.selectColumns(keep)
}

// SortKeys lists the sort options for t: every column, then the index.
func SortKeys(t *AbundanceTable) []string {
	return append(slices.Clone(t.Columns), t.IndexName)
}

// SortBy orders rows by a column or, when key equals the index name, by row
// label. The sort is stable in both directions and NaN always sorts last.
func SortBy(t *AbundanceTable, key string, ascending bool) (*AbundanceTable, error) {
	idx := make([]int, len(t.Rows))
	for i := range idx {
		idx[i] = i
	}

	var compare func(a, b int) int
	if key == t.IndexName {
		compare = func(a, b int) int { return cmp.Compare(t.Rows[a], t.Rows[b]) }
	} else {
		j := t.ColumnIndex(key)
		if j < 0 {
			return nil, fmt.Errorf("sort: %w: %q", ErrUnknownColumn, key)
		}
		compare = func(a, b int) int { return compareValues(t.Values[a][j], t.Values[b][j]) }
	}

	sort.SliceStable(idx, func(x, y int) bool {
		a, b := idx[x], idx[y]
		if !ascending {
			a, b = b, a
		}
		return compare(a, b) < 0
	})
	if !ascending {
		idx = nanLast(t, key, idx)
	}
	return t.selectRows(idx), nil
}

// compareValues orders NaN after every number.
func compareValues(a, b float64) int {
	switch an, bn := math.IsNaN(a), math.IsNaN(b); {
	case an && bn:
		return 0
	case an:
		return 1
	case bn:
		return -1
	}
	return cmp.Compare(a, b)
}

// nanLast moves NaN rows, which a descending comparison puts first, to the
// end while keeping their relative order.
func nanLast(t *AbundanceTable, key string, idx []int) []int {
	j := t.ColumnIndex(key)
	if j < 0 {
		return idx
	}
	nums := make([]int, 0, len(idx))
	nans := make([]int, 0)
	for _, i := range idx {
		if math.IsNaN(t.Values[i][j]) {
			nans = append(nans, i)
		} else {
			nums = append(nums, i)
		}
	}
	return append(nums, nans...)
}

// Page is one slice of a paginated table.
type Page struct {
	Table      *AbundanceTable
	Number     int
	TotalPages int
	PageSize   int
	TotalRows  int
}

// TotalPages is floor(rows/pageSize), at least 1.
func TotalPages(rows, pageSize int) int {
	if pageSize <= 0 {
		return 1
	}
	return max(rows/pageSize, 1)
}

// Paginate returns page pageNumber (1-based) of t, clamping pageNumber into
// [1, TotalPages].
//
// Each page holds rows [start, start+pageSize-1), so the last row of every
// chunk is never shown and rows past TotalPages*pageSize are unreachable.
// This matches the long-standing dashboard exports;
// see DESIGN.md before changing it.
func Paginate(t *AbundanceTable, pageSize, pageNumber int) (*Page, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrBadPageSize, pageSize)
	}
	total := TotalPages(t.NRows(), pageSize)
	pageNumber = min(max(pageNumber, 1), total)

	start := (pageNumber - 1) * pageSize
	end := min(start+pageSize-1, t.NRows())
	idx := make([]int, 0, max(end-start, 0))
	for i := start; i < end; i++ {
		idx = append(idx, i)
	}
	return &Page{
		Table:      t.selectRows(idx),
		Number:     pageNumber,
		TotalPages: total,
		PageSize:   pageSize,
		TotalRows:  t.NRows(),
	}, nil
}

// DropZeroSamples removes columns whose values are all zero and reports their
// names. Distance metrics are undefined on an empty sample.
func DropZeroSamples(t *AbundanceTable) (*AbundanceTable, []string) {
	keep := make([]int, 0, len(t.Columns))
	var dropped []string
	for j, name := range t.Columns {
		zero := true
		for _, row := range t.Values {
			if row[j] != 0 {
				zero = false
				break
			}
		}
		if zero {
			dropped = append(dropped, name)
		} else {
			keep = append(keep, j)
		}
	}
	return t.selectColumns(keep), dropped
}

// TopByMean drops stratified and unassigned rows, orders the rest by row mean
// (descending, stable) and keeps the first n. n <= 0 keeps every row.
func TopByMean(t *AbundanceTable, n int) *AbundanceTable {
	top := Classify(t, RankLevel1)
	means := top.RowMeans()
	idx := make([]int, len(top.Rows))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(x, y int) bool {
		return compareValues(means[idx[y]], means[idx[x]]) < 0
	})
	return top.selectRows(idx).Head(n)
}
