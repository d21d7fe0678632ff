package request

import (
	"net/url"

	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/model"
)

// HeatmapTopRows are the row counts offered for the clustered heatmap; 0
// stands for "all".
var HeatmapTopRows = []int{10, 25, 50, 0}

// MaxClusterRows bounds the rows or samples a clustered heatmap will order.
const MaxClusterRows = 500

// TableRequest is one interaction with the overview table.
type TableRequest struct {
	File          string
	Rank          model.Rank
	Normalize     bool
	MeanAbundance bool
	SortKey       string
	Ascending     bool
	PageSize      int
	Page          int
}

// NewTableRequest reads the overview query string for a table of kind.
// Normalizing turns the mean column off.
func NewTableRequest(q url.Values, kind model.TableKind) (TableRequest, error) {
	rank, err := parseRank(q.Get("rank"), kind.Ranks())
	if err != nil {
		return TableRequest{}, err
	}
	req := TableRequest{
		File:          q.Get("file"),
		Rank:          rank,
		Normalize:     checkbox(q.Get("normalize")) && kind.CanNormalize(),
		MeanAbundance: checkbox(q.Get("mean")),
		SortKey:       q.Get("order_by"),
		Ascending:     ascending(q.Get("order_dir")),
		PageSize:      pickInt(q.Get("page_size"), model.PageSizes, model.PageSizes[0]),
		Page:          parsePositiveIntFallback(q.Get("page"), 1),
	}
	if req.Normalize {
		req.MeanAbundance = false
	}
	return req, nil
}

func (r TableRequest) Options() model.PipelineOptions {
	return model.PipelineOptions{
		Rank:          r.Rank,
		Normalize:     r.Normalize,
		MeanAbundance: r.MeanAbundance,
		SortKey:       r.SortKey,
		Ascending:     r.Ascending,
		PageSize:      r.PageSize,
		Page:          r.Page,
	}
}

// GraphsRequest drives the heatmap and bar plot tabs.
type GraphsRequest struct {
	File    string
	Top     int
	Metric  diversity.Metric
	BarRank model.Rank
	Column  string
	BarTop  int
}

func NewGraphsRequest(q url.Values, kind model.TableKind) (GraphsRequest, error) {
	metric, err := diversity.ParseMetric(q.Get("metric"))
	if err != nil {
		return GraphsRequest{}, err
	}
	barRank, err := parseRank(q.Get("bar_rank"), kind.AnalysisRanks(false))
	if err != nil {
		return GraphsRequest{}, err
	}
	top := HeatmapTopRows[0]
	if q.Get("top") == "all" {
		top = 0
	} else {
		top = pickInt(q.Get("top"), HeatmapTopRows, top)
	}
	return GraphsRequest{
		File:    q.Get("file"),
		Top:     top,
		Metric:  metric,
		BarRank: barRank,
		Column:  q.Get("column"),
		BarTop:  pickInt(q.Get("bar_top"), model.BarplotTopRows, model.BarplotTopRows[0]),
	}, nil
}

func (r GraphsRequest) BarplotOptions() model.BarplotOptions {
	return model.BarplotOptions{Rank: r.BarRank, Column: r.Column, TopRows: r.BarTop}
}

// StatisticsRequest drives the alpha, beta and differential tabs.
type StatisticsRequest struct {
	File    string
	Rank    model.Rank
	Feature string
	Alpha   diversity.AlphaMeasure
	Beta    diversity.BetaMeasure
	First   string
	Second  string
	DiffTop int
}

func NewStatisticsRequest(q url.Values, kind model.TableKind) (StatisticsRequest, error) {
	rank, err := parseRank(q.Get("rank"), kind.AnalysisRanks(true))
	if err != nil {
		return StatisticsRequest{}, err
	}
	alpha, err := diversity.ParseAlphaMeasure(q.Get("alpha"))
	if err != nil {
		return StatisticsRequest{}, err
	}
	beta, err := diversity.ParseBetaMeasure(q.Get("beta"))
	if err != nil {
		return StatisticsRequest{}, err
	}
	return StatisticsRequest{
		File:    q.Get("file"),
		Rank:    rank,
		Feature: q.Get("feature"),
		Alpha:   alpha,
		Beta:    beta,
		First:   q.Get("first"),
		Second:  q.Get("second"),
		DiffTop: pickInt(q.Get("diff_top"), model.DifferentialTopRows, model.DifferentialTopRows[0]),
	}, nil
}
