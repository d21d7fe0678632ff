package model

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// TaxaIndexName replaces the "#clade_name" header of MetaPhlAn tables.
const TaxaIndexName = "Taxa"

// LoadedTable is a parsed upload together with its kind.
type LoadedTable struct {
	Name  string
	Kind  TableKind
	Table *AbundanceTable
}

// LoadTable parses an uploaded tab separated abundance table. The first column
// is the feature label, the first row the sample names.
//
// MetaPhlAn merged tables start with a one line "#mpa_..." preamble: it is
// skipped and the index is renamed to TaxaIndexName.
func LoadTable(data []byte, filename string) (*LoadedTable, error) {
	kind := DetectKind(filename)

	r := bufio.NewReader(bytes.NewReader(data))
	if kind == KindTaxonomic {
		if _, err := r.ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%s: skip preamble: %w", filename, err)
		}
	}

	table, err := readMatrix(r, '\t')
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if kind == KindTaxonomic {
		table.IndexName = TaxaIndexName
	}

	return &LoadedTable{Name: filename, Kind: kind, Table: table}, nil
}

func newDelimitedReader(r io.Reader, comma rune) *csv.Reader {
	cr := csv.NewReader(r)
	cr.Comma = comma
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return cr
}

func readMatrix(r io.Reader, comma rune) (*AbundanceTable, error) {
	cr := newDelimitedReader(r, comma)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) < 1 {
		return nil, ErrEmptyTable
	}

	t := &AbundanceTable{
		IndexName: header[0],
		Columns:   header[1:],
	}
	seenCol := make(map[string]struct{}, len(t.Columns))
	for _, c := range t.Columns {
		if _, dup := seenCol[c]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c)
		}
		seenCol[c] = struct{}{}
	}

	seenRow := make(map[string]struct{})
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("line %d: %w: got %d, want %d", line, ErrRaggedRow, len(rec), len(header))
		}

		label := rec[0]
		if _, dup := seenRow[label]; dup {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrDuplicateRow, label)
		}
		seenRow[label] = struct{}{}

		row := make([]float64, len(rec)-1)
		for j, cell := range rec[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %q: %w: %q", line, t.Columns[j], ErrBadCell, cell)
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("line %d column %q: %w: %q", line, t.Columns[j], ErrBadCell, cell)
			}
			if v < 0 {
				return nil, fmt.Errorf("line %d column %q: %w", line, t.Columns[j], ErrNegativeValue)
			}
			row[j] = v
		}
		t.Rows = append(t.Rows, label)
		t.Values = append(t.Values, row)
	}
	return t, nil
}
