package request

import (
	"net/url"
	"testing"

	"github.com/yumyai/mbdash/pkg/diversity"
	"github.com/yumyai/mbdash/pkg/model"
)

func TestNewTableRequestDefaults(t *testing.T) {
	req, err := NewTableRequest(url.Values{}, model.KindTaxonomic)
	if err != nil {
		t.Fatal(err)
	}
	if req.Rank != model.RankKingdom || req.PageSize != 25 || req.Page != 1 || !req.Ascending {
		t.Errorf("unexpected defaults: %+v", req)
	}
}

func TestNewTableRequestNormalizeDisablesMean(t *testing.T) {
	q := url.Values{
		"rank":      {"level1"},
		"normalize": {"on"},
		"mean":      {"on"},
		"order_dir": {"desc"},
		"page_size": {"75"},
		"page":      {"-3"},
	}
	req, err := NewTableRequest(q, model.KindGeneFamilies)
	if err != nil {
		t.Fatal(err)
	}
	if !req.Normalize || req.MeanAbundance {
		t.Errorf("normalize=%v mean=%v", req.Normalize, req.MeanAbundance)
	}
	if req.Ascending {
		t.Error("order_dir=desc should sort descending")
	}
	if req.PageSize != 25 {
		t.Errorf("page size not offered should fall back, got %d", req.PageSize)
	}
	if req.Page != 1 {
		t.Errorf("page = %d", req.Page)
	}
}

func TestNewTableRequestTaxonomicKeepsMean(t *testing.T) {
	q := url.Values{"normalize": {"on"}, "mean": {"on"}}
	req, err := NewTableRequest(q, model.KindTaxonomic)
	if err != nil {
		t.Fatal(err)
	}
	if req.Normalize || !req.MeanAbundance {
		t.Errorf("normalize=%v mean=%v", req.Normalize, req.MeanAbundance)
	}
}

func TestRankNotOffered(t *testing.T) {
	if _, err := NewTableRequest(url.Values{"rank": {"kingdom"}}, model.KindPathAbundance); err == nil {
		t.Error("kingdom is not offered for path abundance")
	}
	if _, err := NewTableRequest(url.Values{"rank": {"bogus"}}, model.KindGeneric); err == nil {
		t.Error("bogus rank accepted")
	}
	// The bar plot never offers "all" for taxonomic tables.
	if _, err := NewGraphsRequest(url.Values{"bar_rank": {"all"}}, model.KindTaxonomic); err == nil {
		t.Error("bar plot accepted rank all")
	}
}

func TestNewGraphsRequest(t *testing.T) {
	req, err := NewGraphsRequest(url.Values{"top": {"all"}, "metric": {"jaccard"}, "bar_top": {"50"}}, model.KindGeneFamilies)
	if err != nil {
		t.Fatal(err)
	}
	if req.Top != 0 || req.Metric != diversity.JaccardMetric || req.BarTop != 50 || req.BarRank != model.RankLevel1 {
		t.Errorf("unexpected request: %+v", req)
	}
	if _, err := NewGraphsRequest(url.Values{"metric": {"cosine"}}, model.KindGeneric); err == nil {
		t.Error("unknown metric accepted")
	}
}

func TestNewStatisticsRequest(t *testing.T) {
	req, err := NewStatisticsRequest(url.Values{"rank": {"all"}, "alpha": {"simpson"}, "diff_top": {"50"}}, model.KindTaxonomic)
	if err != nil {
		t.Fatal(err)
	}
	if req.Rank != model.RankAll || req.Alpha != diversity.Simpson || req.Beta != diversity.BrayCurtis || req.DiffTop != 50 {
		t.Errorf("unexpected request: %+v", req)
	}
}
