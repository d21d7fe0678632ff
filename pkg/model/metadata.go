package model

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Metadata is a sample sheet: one row per sample, categorical columns.
type Metadata struct {
	IndexName string
	Samples   []string
	Features  []string
	Values    [][]string // [sample][feature]
}

// LoadMetadata parses a sample sheet. The delimiter follows the extension.
func LoadMetadata(data []byte, filename string) (*Metadata, error) {
	var comma rune
	switch {
	case strings.Contains(filename, ".tsv"):
		comma = '\t'
	case strings.Contains(filename, ".csv"):
		comma = ','
	default:
		return nil, fmt.Errorf("%s: %w", filename, ErrUnknownMetadataFormat)
	}

	cr := newDelimitedReader(bytes.NewReader(data), comma)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", filename, ErrEmptyTable)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: read header: %w", filename, err)
	}

	md := &Metadata{IndexName: header[0], Features: header[1:]}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%s: read row: %w", filename, err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		if len(rec) != len(header) {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("%s: line %d: %w", filename, line, ErrRaggedRow)
		}
		md.Samples = append(md.Samples, rec[0])
		md.Values = append(md.Values, rec[1:])
	}
	return md, nil
}

// Feature returns the value of feature for every sample, in sample order.
func (m *Metadata) Feature(name string) ([]string, error) {
	j := -1
	for k, f := range m.Features {
		if f == name {
			j = k
			break
		}
	}
	if j < 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, name)
	}
	out := make([]string, len(m.Samples))
	for i, row := range m.Values {
		out[i] = row[j]
	}
	return out, nil
}
