package model

import (
	"fmt"
	"strings"
)

// Classify returns the rows of t that sit at rank r.
//
// Taxonomic ranks use plain substring tests on the lineage label: a row is at
// rank k when it contains the rank-k prefix and not the rank-(k+1) prefix.
// Lineages with gaps can therefore land on several ranks or none; this
// matches how MetaPhlAn tables have always been sliced here and is kept as-is.
//
// Functional Level 1 keeps rows with none of g__, unclassified, UNINTEGRATED,
// UNMAPPED. Level 2 keeps rows containing g__. RankAll returns every row.
//
// Classify panics on a Rank outside the declared set: callers obtain ranks
// from TableKind.Ranks or ParseRank.
func Classify(t *AbundanceTable, r Rank) *AbundanceTable {
	keep := rankPredicate(r)
	idx := make([]int, 0, len(t.Rows))
	for i, label := range t.Rows {
		if keep(label) {
			idx = append(idx, i)
		}
	}
	return t.selectRows(idx)
}

func rankPredicate(r Rank) func(string) bool {
	switch {
	case r >= RankKingdom && r <= RankSpecies:
		this, next := lineagePrefixes[r-1], lineagePrefixes[r]
		return func(label string) bool {
			return strings.Contains(label, this) && !strings.Contains(label, next)
		}
	case r == RankAll:
		return func(string) bool { return true }
	case r == RankLevel1:
		return isTopLevel
	case r == RankLevel2:
		return func(label string) bool { return strings.Contains(label, "g__") }
	default:
		panic(fmt.Sprintf("model: classify with invalid rank %d", int(r)))
	}
}

func isTopLevel(label string) bool {
	for _, tok := range unresolvedTokens {
		if strings.Contains(label, tok) {
			return false
		}
	}
	return true
}
