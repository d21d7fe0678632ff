package model

import "strings"

// TableKind is the pipeline output a table came from. It is decided once at
// load time from the file name and passed around explicitly afterwards.
type TableKind int

const (
	KindGeneric TableKind = iota
	KindTaxonomic
	KindGeneFamilies
	KindPathAbundance
	KindPathCoverage
)

func (k TableKind) String() string {
	switch k {
	case KindTaxonomic:
		return "metaphlan"
	case KindGeneFamilies:
		return "genefamilies"
	case KindPathAbundance:
		return "pathabundance"
	case KindPathCoverage:
		return "pathcoverage"
	default:
		return "generic"
	}
}

// DetectKind applies the file naming contract of the profiling pipelines:
// MetaPhlAn merged tables contain "metaphlan", HUMAnN outputs contain
// "genefamilies", "pathabundance" or "pathcoverage".
func DetectKind(filename string) TableKind {
	switch {
	case strings.Contains(filename, "metaphlan"):
		return KindTaxonomic
	case strings.Contains(filename, "genefamilies"):
		return KindGeneFamilies
	case strings.Contains(filename, "pathabundance"):
		return KindPathAbundance
	case strings.Contains(filename, "pathcoverage"):
		return KindPathCoverage
	default:
		return KindGeneric
	}
}

// Ranks lists the levels offered for a kind, in display order.
func (k TableKind) Ranks() []Rank {
	switch k {
	case KindTaxonomic:
		return []Rank{RankKingdom, RankPhylum, RankClass, RankOrder, RankFamily, RankGenus, RankSpecies, RankAll}
	case KindGeneFamilies:
		return []Rank{RankAll, RankLevel1, RankLevel2}
	case KindPathAbundance:
		return []Rank{RankLevel1}
	default:
		return []Rank{RankAll}
	}
}

// AnalysisRanks are the levels offered on the graph and statistics pages.
// The bar plot never offers "All" for taxonomic tables and gene families
// drop the unfiltered view there.
func (k TableKind) AnalysisRanks(withAll bool) []Rank {
	switch k {
	case KindTaxonomic:
		if withAll {
			return k.Ranks()
		}
		return k.Ranks()[:7]
	case KindGeneFamilies:
		return []Rank{RankLevel1, RankLevel2}
	default:
		return k.Ranks()
	}
}

// CanNormalize is false for MetaPhlAn tables, which are already relative
// abundances.
func (k TableKind) CanNormalize() bool {
	return k != KindTaxonomic
}

// SupportsAnalysis is false for path coverage tables; heatmaps, bar plots
// and diversity are meaningless on coverage values.
func (k TableKind) SupportsAnalysis() bool {
	return k != KindPathCoverage
}

// Profiled is true for the three pipeline outputs whose row labels follow a
// known lineage convention. Bar plots and per-sample statistics need one.
func (k TableKind) Profiled() bool {
	return k == KindTaxonomic || k == KindGeneFamilies || k == KindPathAbundance
}

func (k TableKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}
