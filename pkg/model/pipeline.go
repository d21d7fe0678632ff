package model

import (
	"fmt"
	"slices"
)

// PageSizes offered by the table view.
var PageSizes = []int{25, 50, 100}

// PipelineOptions is one user interaction on the table view.
type PipelineOptions struct {
	Rank          Rank
	Normalize     bool
	MeanAbundance bool
	SortKey       string // empty means the index
	Ascending     bool
	PageSize      int
	Page          int
}

// DisplayTable is what the table view renders.
type DisplayTable struct {
	Kind       TableKind       `json:"kind"`
	Rank       string          `json:"rank"`
	Table      *AbundanceTable `json:"table"`
	SortKeys   []string        `json:"sort_keys"`
	SortKey    string          `json:"sort_key"`
	Ascending  bool            `json:"ascending"`
	Page       int             `json:"page"`
	TotalPages int             `json:"total_pages"`
	PageSize   int             `json:"page_size"`
	TotalRows  int             `json:"total_rows"`
}

// RunPipeline applies classify, normalize, mean column, sort and paginate in
// that order. The order matters: sort keys are enumerated after the mean
// column has been added or removed so it never leaks into (or goes missing
// from) the sort selector.
func RunPipeline(t *AbundanceTable, kind TableKind, opts PipelineOptions) (*DisplayTable, error) {
	cur := Classify(t, opts.Rank)

	if opts.Normalize && kind.CanNormalize() {
		cur = Normalize(cur)
	}

	if opts.MeanAbundance {
		cur = WithMeanAbundance(cur)
	} else {
		cur = WithoutMeanAbundance(cur)
	}

	keys := SortKeys(cur)
	key := opts.SortKey
	if key == "" || !slices.Contains(keys, key) {
		// A stale selection (e.g. the mean column after it was switched
		// off) falls back to the index like a fresh page load.
		key = cur.IndexName
	}

	sorted, err := SortBy(cur, key, opts.Ascending)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	page, err := Paginate(sorted, opts.PageSize, opts.Page)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	return &DisplayTable{
		Kind:       kind,
		Rank:       opts.Rank.String(),
		Table:      page.Table,
		SortKeys:   keys,
		SortKey:    key,
		Ascending:  opts.Ascending,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		PageSize:   page.PageSize,
		TotalRows:  page.TotalRows,
	}, nil
}
