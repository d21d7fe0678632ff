// Package diversity wraps the numerical work behind the statistics pages:
// alpha diversity per sample, beta diversity distance matrices, principal
// coordinates and the linkage used to order clustered heatmaps. The heavy
// lifting is delegated to gonum.
package diversity

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/yumyai/mbdash/pkg/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type AlphaMeasure int

const (
	Shannon AlphaMeasure = iota
	Simpson
)

func (m AlphaMeasure) String() string {
	switch m {
	case Simpson:
		return "Simpson"
	default:
		return "Shannon"
	}
}

func ParseAlphaMeasure(s string) (AlphaMeasure, error) {
	switch strings.ToLower(s) {
	case "shannon", "":
		return Shannon, nil
	case "simpson":
		return Simpson, nil
	}
	return 0, fmt.Errorf("unknown alpha diversity measure %q", s)
}

// proportions returns counts scaled to sum to one, or nil for an empty sample.
func proportions(counts []float64) []float64 {
	total := floats.Sum(counts)
	if total == 0 {
		return nil
	}
	p := make([]float64, len(counts))
	floats.ScaleTo(p, 1/total, counts)
	return p
}

// Alpha computes a single-sample diversity index. Shannon is in bits; Simpson
// is 1 - sum(p^2). An all-zero sample yields NaN.
func Alpha(counts []float64, m AlphaMeasure) float64 {
	p := proportions(counts)
	if p == nil {
		return math.NaN()
	}
	switch m {
	case Simpson:
		return 1 - floats.Dot(p, p)
	default:
		return stat.Entropy(p) / math.Ln2
	}
}

// SampleKey maps a profile column to its sample id: the part before the
// first underscore ("S1_taxonomic_profile" -> "S1").
func SampleKey(column string) string {
	key, _, _ := strings.Cut(column, "_")
	return key
}

// AlphaBySample computes m for every column of t, keyed by SampleKey.
func AlphaBySample(t *model.AbundanceTable, m AlphaMeasure) map[string]float64 {
	out := make(map[string]float64, t.NCols())
	for j, vec := range t.SampleMajor() {
		out[SampleKey(t.Columns[j])] = Alpha(vec, m)
	}
	return out
}

// AlphaGroup holds the diversity values of all samples sharing one metadata
// value, plus the five-number summary drawn by the group plot.
type AlphaGroup struct {
	Name    string
	Samples []string
	Values  []float64
	Min     float64
	Q1      float64
	Median  float64
	Q3      float64
	Max     float64
	Mean    float64
}

// GroupAlpha splits the per-sample indexes by a metadata feature. Groups
// appear in first-seen order. Samples missing from indexes, or whose index is
// NaN, are skipped.
func GroupAlpha(indexes map[string]float64, md *model.Metadata, feature string) ([]AlphaGroup, error) {
	values, err := md.Feature(feature)
	if err != nil {
		return nil, err
	}

	var groups []AlphaGroup
	pos := map[string]int{}
	for i, sample := range md.Samples {
		v, ok := indexes[sample]
		if !ok || math.IsNaN(v) {
			continue
		}
		name := values[i]
		k, seen := pos[name]
		if !seen {
			k = len(groups)
			pos[name] = k
			groups = append(groups, AlphaGroup{Name: name})
		}
		groups[k].Samples = append(groups[k].Samples, sample)
		groups[k].Values = append(groups[k].Values, v)
	}

	for k := range groups {
		summarize(&groups[k])
	}
	return groups, nil
}

func summarize(g *AlphaGroup) {
	sorted := slices.Clone(g.Values)
	slices.Sort(sorted)
	g.Min = sorted[0]
	g.Max = sorted[len(sorted)-1]
	g.Q1 = stat.Quantile(0.25, stat.LinInterp, sorted, nil)
	g.Median = stat.Quantile(0.5, stat.LinInterp, sorted, nil)
	g.Q3 = stat.Quantile(0.75, stat.LinInterp, sorted, nil)
	g.Mean = stat.Mean(sorted, nil)
}
