package diversity

import (
	"errors"
	"fmt"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

var (
	ErrZeroSample     = errors.New("sample has zero abundance in every row")
	ErrTooFewSamples  = errors.New("at least two samples are required")
	ErrLengthMismatch = errors.New("sample vectors differ in length")
)

type BetaMeasure int

const (
	BrayCurtis BetaMeasure = iota
	Jaccard
)

func (m BetaMeasure) String() string {
	switch m {
	case Jaccard:
		return "Jaccard"
	default:
		return "Braycurtis"
	}
}

func ParseBetaMeasure(s string) (BetaMeasure, error) {
	switch strings.ToLower(s) {
	case "braycurtis", "bray-curtis", "":
		return BrayCurtis, nil
	case "jaccard":
		return Jaccard, nil
	}
	return 0, fmt.Errorf("unknown beta diversity measure %q", s)
}

// DistanceMatrix is a labelled symmetric matrix of pairwise distances.
type DistanceMatrix struct {
	IDs  []string
	Data *mat.SymDense
}

func (d *DistanceMatrix) Len() int { return len(d.IDs) }

func (d *DistanceMatrix) At(i, j int) float64 { return d.Data.At(i, j) }

// Beta builds the distance matrix between samples. counts is sample-major:
// counts[i] is the feature vector of ids[i]. Empty samples must be removed
// beforehand (model.DropZeroSamples); they are rejected with ErrZeroSample.
func Beta(ids []string, counts [][]float64, m BetaMeasure) (*DistanceMatrix, error) {
	n := len(ids)
	if n < 2 {
		return nil, ErrTooFewSamples
	}
	if len(counts) != n {
		return nil, fmt.Errorf("%w: %d ids, %d vectors", ErrLengthMismatch, n, len(counts))
	}
	for i, v := range counts {
		if len(v) != len(counts[0]) {
			return nil, fmt.Errorf("%w: %s", ErrLengthMismatch, ids[i])
		}
		if floats.Sum(v) == 0 {
			return nil, fmt.Errorf("%w: %s", ErrZeroSample, ids[i])
		}
	}

	dist := braycurtis
	if m == Jaccard {
		dist = jaccard
	}

	data := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			data.SetSym(i, j, dist(counts[i], counts[j]))
		}
	}
	return &DistanceMatrix{IDs: ids, Data: data}, nil
}

func braycurtis(u, v []float64) float64 {
	return floats.Distance(u, v, 1) / (floats.Sum(u) + floats.Sum(v))
}

// jaccard is the presence/absence Jaccard distance: features present in
// exactly one sample over features present in either.
func jaccard(u, v []float64) float64 {
	var either, one int
	for k := range u {
		a, b := u[k] != 0, v[k] != 0
		if a || b {
			either++
		}
		if a != b {
			one++
		}
	}
	if either == 0 {
		return 0
	}
	return float64(one) / float64(either)
}
