package diversity

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// Ordination is the result of a principal coordinate analysis.
type Ordination struct {
	IDs []string
	// Eigenvalues per axis, largest first. Negative values are clamped to 0.
	Eigenvalues []float64
	// ProportionExplained per axis; sums to 1 unless every eigenvalue is 0.
	ProportionExplained []float64
	// Coordinates[i][k] is sample i on axis k.
	Coordinates [][]float64
}

// Axis returns the coordinates of every sample on axis k, or zeros when the
// ordination has fewer axes.
func (o *Ordination) Axis(k int) []float64 {
	out := make([]float64, len(o.IDs))
	if k >= len(o.Eigenvalues) {
		return out
	}
	for i := range o.IDs {
		out[i] = o.Coordinates[i][k]
	}
	return out
}

// Proportion returns the share of variance on axis k, or 0.
func (o *Ordination) Proportion(k int) float64 {
	if k >= len(o.ProportionExplained) {
		return 0
	}
	return o.ProportionExplained[k]
}

// Ordinate runs classical PCoA on dm: double-centre -d²/2 and take the
// eigendecomposition.
func Ordinate(dm *DistanceMatrix) (*Ordination, error) {
	n := dm.Len()
	if n < 2 {
		return nil, ErrTooFewSamples
	}

	a := make([]float64, n*n)
	rowMean := make([]float64, n)
	var grand float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			d := dm.At(i, j)
			v := -0.5 * d * d
			a[i*n+j] = v
			rowMean[i] += v
		}
		grand += rowMean[i]
		rowMean[i] /= float64(n)
	}
	grand /= float64(n * n)

	// A is symmetric, so row and column means coincide.
	b := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			b.SetSym(i, j, a[i*n+j]-rowMean[i]-rowMean[j]+grand)
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(b, true); !ok {
		return nil, errors.New("pcoa: eigendecomposition did not converge")
	}
	values := es.Values(nil)
	var vectors mat.Dense
	es.VectorsTo(&vectors)

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return values[order[x]] > values[order[y]] })

	ord := &Ordination{
		IDs:                 dm.IDs,
		Eigenvalues:         make([]float64, n),
		ProportionExplained: make([]float64, n),
		Coordinates:         make([][]float64, n),
	}
	var total float64
	for k, col := range order {
		ord.Eigenvalues[k] = math.Max(values[col], 0)
		total += ord.Eigenvalues[k]
	}
	for i := 0; i < n; i++ {
		ord.Coordinates[i] = make([]float64, n)
		for k, col := range order {
			ord.Coordinates[i][k] = vectors.At(i, col) * math.Sqrt(ord.Eigenvalues[k])
		}
	}
	if total > 0 {
		for k, v := range ord.Eigenvalues {
			ord.ProportionExplained[k] = v / total
		}
	}
	return ord, nil
}
