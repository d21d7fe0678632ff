package model

import "fmt"

// Rank selects which rows of a table belong to one taxonomic or functional
// level.
type Rank int

const (
	RankKingdom Rank = iota + 1
	RankPhylum
	RankClass
	RankOrder
	RankFamily
	RankGenus
	RankSpecies
	RankAll

	// Functional tables: rows not resolved to a genus/species and not one of
	// the unclassified/unintegrated/unmapped buckets.
	RankLevel1
	// Gene families stratified by organism ("|g__X.s__Y").
	RankLevel2
)

// lineagePrefixes are the rank tokens in hierarchy order; index i is the
// prefix of Rank(i+1).
var lineagePrefixes = []string{"k__", "p__", "c__", "o__", "f__", "g__", "s__", "t__"}

// unresolvedTokens mark rows that are stratified or unassigned in HUMAnN
// output.
var unresolvedTokens = []string{"g__", "unclassified", "UNINTEGRATED", "UNMAPPED"}

var rankSlugs = map[Rank]string{
	RankKingdom: "kingdom",
	RankPhylum:  "phylum",
	RankClass:   "class",
	RankOrder:   "order",
	RankFamily:  "family",
	RankGenus:   "genus",
	RankSpecies: "species",
	RankAll:     "all",
	RankLevel1:  "level1",
	RankLevel2:  "level2",
}

var rankLabels = map[Rank]string{
	RankKingdom: "Taxonomic Level 1 (Kingdom)",
	RankPhylum:  "Taxonomic Level 2 (Phylum)",
	RankClass:   "Taxonomic Level 3 (Class)",
	RankOrder:   "Taxonomic Level 4 (Order)",
	RankFamily:  "Taxonomic Level 5 (Family)",
	RankGenus:   "Taxonomic Level 6 (Genus)",
	RankSpecies: "Taxonomic Level 7 (Species)",
	RankAll:     "All",
	RankLevel1:  "Taxonomic Level 1",
	RankLevel2:  "Taxonomic Level 2 (Genus & Species)",
}

// String is the slug used in query strings.
func (r Rank) String() string {
	if s, ok := rankSlugs[r]; ok {
		return s
	}
	return fmt.Sprintf("Rank(%d)", int(r))
}

// Label is the text shown in level selectors.
func (r Rank) Label() string {
	if s, ok := rankLabels[r]; ok {
		return s
	}
	return r.String()
}

// ParseRank maps a slug back to a Rank.
func ParseRank(s string) (Rank, error) {
	for r, slug := range rankSlugs {
		if slug == s {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownRank, s)
}

// LabelFor is Label with the MetaPhlAn numbering for "All".
func (r Rank) LabelFor(k TableKind) string {
	if r == RankAll && k == KindTaxonomic {
		return "Taxonomic Level 8 (All)"
	}
	return r.Label()
}
