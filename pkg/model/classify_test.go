package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lineageTable() *AbundanceTable {
	return &AbundanceTable{
		IndexName: "Taxa",
		Rows: []string{
			"k__Bacteria",
			"k__Bacteria|p__Firmicutes",
			"k__Bacteria|p__Firmicutes|c__Bacilli",
			"k__Bacteria|p__Firmicutes|c__Bacilli|o__Lactobacillales",
			"k__Bacteria|p__Firmicutes|c__Bacilli|o__Lactobacillales|f__Streptococcaceae",
			"k__Bacteria|p__Firmicutes|c__Bacilli|o__Lactobacillales|f__Streptococcaceae|g__Streptococcus",
			"k__Bacteria|p__Firmicutes|c__Bacilli|o__Lactobacillales|f__Streptococcaceae|g__Streptococcus|s__Streptococcus_mitis",
			"k__Bacteria|p__Firmicutes|c__Bacilli|o__Lactobacillales|f__Streptococcaceae|g__Streptococcus|s__Streptococcus_mitis|t__SGB1",
		},
		Columns: []string{"S1", "S2"},
		Values: [][]float64{
			{100, 100}, {60, 50}, {60, 50}, {60, 50}, {40, 30}, {40, 30}, {20, 10}, {20, 10},
		},
	}
}

func TestClassifyFullLineage(t *testing.T) {
	tbl := lineageTable()
	for r := RankKingdom; r <= RankSpecies; r++ {
		got := Classify(tbl, r)
		require.Equal(t, 1, got.NRows(), "rank %s", r)
		assert.Equal(t, tbl.Rows[r-1], got.Rows[0], "rank %s", r)
		assert.Equal(t, tbl.Values[r-1], got.Values[0])
	}
}

func TestClassifyAllKeepsOrder(t *testing.T) {
	tbl := lineageTable()
	got := Classify(tbl, RankAll)
	assert.Equal(t, tbl.Rows, got.Rows)
	assert.Equal(t, tbl.Values, got.Values)
	assert.Equal(t, tbl.Columns, got.Columns)
}

func TestClassifyDoesNotAlias(t *testing.T) {
	tbl := lineageTable()
	got := Classify(tbl, RankAll)
	got.Values[0][0] = -1
	got.Rows[0] = "changed"
	assert.Equal(t, 100.0, tbl.Values[0][0])
	assert.Equal(t, "k__Bacteria", tbl.Rows[0])
}

// Substring matching, not lineage parsing: a row carrying the next prefix
// anywhere is excluded from the shallower rank.
func TestClassifySubstringRule(t *testing.T) {
	tbl := &AbundanceTable{
		IndexName: "Taxa",
		Rows:      []string{"k__A|p__X", "k__A|p__X|c__Y"},
		Columns:   []string{"S1", "S2"},
		Values:    [][]float64{{10, 20}, {5, 5}},
	}

	assert.Empty(t, Classify(tbl, RankKingdom).Rows)
	assert.Equal(t, []string{"k__A|p__X"}, Classify(tbl, RankPhylum).Rows)
	assert.Equal(t, []string{"k__A|p__X|c__Y"}, Classify(tbl, RankClass).Rows)
	assert.Empty(t, Classify(tbl, RankOrder).Rows)
}

func TestClassifyGappedLineage(t *testing.T) {
	// No family level: the genus row is a genus, and also reports as
	// order because it lacks f__.
	tbl := &AbundanceTable{
		IndexName: "Taxa",
		Rows:      []string{"k__A|p__B|c__C|o__D|g__E"},
		Columns:   []string{"S1"},
		Values:    [][]float64{{1}},
	}
	assert.Len(t, Classify(tbl, RankOrder).Rows, 1)
	assert.Len(t, Classify(tbl, RankGenus).Rows, 1)
	assert.Empty(t, Classify(tbl, RankFamily).Rows)
}

func TestClassifyFunctional(t *testing.T) {
	tbl := &AbundanceTable{
		IndexName: "# Gene Family",
		Rows: []string{
			"UNMAPPED",
			"UniRef90_A0A015",
			"UniRef90_A0A015|g__Bacteroides.s__Bacteroides_fragilis",
			"UniRef90_A0A015|unclassified",
			"UNINTEGRATED",
			"UniRef90_Q8A1",
		},
		Columns: []string{"S1"},
		Values:  [][]float64{{1}, {2}, {3}, {4}, {5}, {6}},
	}

	assert.Equal(t, []string{"UniRef90_A0A015", "UniRef90_Q8A1"}, Classify(tbl, RankLevel1).Rows)
	assert.Equal(t, []string{"UniRef90_A0A015|g__Bacteroides.s__Bacteroides_fragilis"}, Classify(tbl, RankLevel2).Rows)
	assert.Len(t, Classify(tbl, RankAll).Rows, 6)
}

func TestClassifyInvalidRankPanics(t *testing.T) {
	assert.Panics(t, func() { Classify(lineageTable(), Rank(0)) })
	assert.Panics(t, func() { Classify(lineageTable(), Rank(99)) })
}

func TestParseRank(t *testing.T) {
	for _, r := range []Rank{RankKingdom, RankSpecies, RankAll, RankLevel1, RankLevel2} {
		got, err := ParseRank(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}
	_, err := ParseRank("domain")
	assert.ErrorIs(t, err, ErrUnknownRank)
}

func TestDetectKind(t *testing.T) {
	cases := map[string]TableKind{
		"merged_metaphlan_abundance.tsv": KindTaxonomic,
		"humann_genefamilies.tsv":        KindGeneFamilies,
		"humann_pathabundance.tsv":       KindPathAbundance,
		"humann_pathcoverage.tsv":        KindPathCoverage,
		"counts.tsv":                     KindGeneric,
	}
	for name, want := range cases {
		assert.Equal(t, want, DetectKind(name), name)
	}
	assert.False(t, KindTaxonomic.CanNormalize())
	assert.False(t, KindPathCoverage.SupportsAnalysis())
	assert.Equal(t, []Rank{RankLevel1}, KindPathAbundance.Ranks())
	assert.Len(t, KindTaxonomic.AnalysisRanks(false), 7)
	assert.Equal(t, "Taxonomic Level 8 (All)", RankAll.LabelFor(KindTaxonomic))
}
