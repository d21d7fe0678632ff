package model

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
)

// MeanAbundanceColumn is the column appended by WithMeanAbundance.
const MeanAbundanceColumn = "Mean abundance"

// AbundanceTable is a feature-by-sample matrix. Rows are features (taxa, gene
// families, pathways), columns are samples. Values is row-major.
//
// A table is treated as immutable once loaded: every transform in this
// package returns a fresh table and never writes into its input.
type AbundanceTable struct {
	IndexName string      `json:"index_name"`
	Rows      []string    `json:"rows"`
	Columns   []string    `json:"columns"`
	Values    [][]float64 `json:"values"`
}

func (t *AbundanceTable) NRows() int { return len(t.Rows) }

func (t *AbundanceTable) NCols() int { return len(t.Columns) }

// ColumnIndex returns the position of name, or -1.
func (t *AbundanceTable) ColumnIndex(name string) int {
	return slices.Index(t.Columns, name)
}

func (t *AbundanceTable) HasColumn(name string) bool {
	return t.ColumnIndex(name) >= 0
}

// Column returns a copy of the named column.
func (t *AbundanceTable) Column(name string) ([]float64, error) {
	j := t.ColumnIndex(name)
	if j < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]float64, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Values[i][j]
	}
	return out, nil
}

// Clone returns a deep copy.
func (t *AbundanceTable) Clone() *AbundanceTable {
	all := make([]int, len(t.Rows))
	for i := range all {
		all[i] = i
	}
	return t.selectRows(all)
}

// selectRows copies the given rows, in the given order, into a new table.
func (t *AbundanceTable) selectRows(idx []int) *AbundanceTable {
	out := &AbundanceTable{
		IndexName: t.IndexName,
		Rows:      make([]string, 0, len(idx)),
		Columns:   slices.Clone(t.Columns),
		Values:    make([][]float64, 0, len(idx)),
	}
	for _, i := range idx {
		out.Rows = append(out.Rows, t.Rows[i])
		out.Values = append(out.Values, slices.Clone(t.Values[i]))
	}
	return out
}

// selectColumns copies the given columns, in the given order, into a new table.
func (t *AbundanceTable) selectColumns(idx []int) *AbundanceTable {
	out := &AbundanceTable{
		IndexName: t.IndexName,
		Rows:      slices.Clone(t.Rows),
		Columns:   make([]string, 0, len(idx)),
		Values:    make([][]float64, len(t.Rows)),
	}
	for _, j := range idx {
		out.Columns = append(out.Columns, t.Columns[j])
	}
	for i, row := range t.Values {
		r := make([]float64, 0, len(idx))
		for _, j := range idx {
			r = append(r, row[j])
		}
		out.Values[i] = r
	}
	return out
}

// SelectColumns returns a table restricted to the named columns.
func (t *AbundanceTable) SelectColumns(names ...string) (*AbundanceTable, error) {
	idx := make([]int, 0, len(names))
	for _, name := range names {
		j := t.ColumnIndex(name)
		if j < 0 {
			return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
		}
		idx = append(idx, j)
	}
	return t.selectColumns(idx), nil
}

// Head returns the first n rows. n <= 0 or n >= NRows returns a full copy.
func (t *AbundanceTable) Head(n int) *AbundanceTable {
	if n <= 0 || n > len(t.Rows) {
		n = len(t.Rows)
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.selectRows(idx)
}

// SampleMajor returns the transpose of the value matrix: one vector per
// column, in column order.
func (t *AbundanceTable) SampleMajor() [][]float64 {
	out := make([][]float64, len(t.Columns))
	for j := range t.Columns {
		v := make([]float64, len(t.Rows))
		for i := range t.Rows {
			v[i] = t.Values[i][j]
		}
		out[j] = v
	}
	return out
}

// RowMeans is the arithmetic mean of every row over the sample columns,
// ignoring MeanAbundanceColumn if present.
func (t *AbundanceTable) RowMeans() []float64 {
	skip := t.ColumnIndex(MeanAbundanceColumn)
	n := len(t.Columns)
	if skip >= 0 {
		n--
	}
	means := make([]float64, len(t.Rows))
	for i, row := range t.Values {
		var sum float64
		for j, v := range row {
			if j == skip {
				continue
			}
			sum += v
		}
		means[i] = sum / float64(n)
	}
	return means
}

// MarshalJSON writes NaN cells, which JSON cannot represent, as null.
func (t *AbundanceTable) MarshalJSON() ([]byte, error) {
	values := make([][]*float64, len(t.Values))
	for i, row := range t.Values {
		values[i] = make([]*float64, len(row))
		for j, v := range row {
			if !math.IsNaN(v) {
				values[i][j] = &v
			}
		}
	}
	return json.Marshal(struct {
		IndexName string       `json:"index_name"`
		Rows      []string     `json:"rows"`
		Columns   []string     `json:"columns"`
		Values    [][]*float64 `json:"values"`
	}{t.IndexName, t.Rows, t.Columns, values})
}
