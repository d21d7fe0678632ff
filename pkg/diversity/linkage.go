package diversity

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

type Metric int

const (
	Euclidean Metric = iota
	Correlation
	JaccardMetric
)

var metricNames = map[Metric]string{
	Euclidean:     "euclidean",
	Correlation:   "correlation",
	JaccardMetric: "jaccard",
}

func (m Metric) String() string { return metricNames[m] }

func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return Euclidean, nil
	}
	for m, name := range metricNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown distance metric %q", s)
}

// Distance between two equal-length vectors under m. A correlation distance
// involving a constant vector is treated as 1.
func Distance(u, v []float64, m Metric) float64 {
	switch m {
	case Correlation:
		r := stat.Correlation(u, v, nil)
		if math.IsNaN(r) {
			return 1
		}
		return 1 - r
	case JaccardMetric:
		return jaccard(u, v)
	default:
		return floats.Distance(u, v, 2)
	}
}

// LeafOrder clusters vectors by complete linkage and returns their indexes in
// dendrogram leaf order. Ties merge the earliest pair.
//
// Each row caches its nearest later neighbour, so a merge only rescans the
// rows whose neighbour was absorbed.
func LeafOrder(vectors [][]float64, m Metric) []int {
	n := len(vectors)
	if n == 0 {
		return nil
	}

	members := make([][]int, n)
	active := make([]bool, n)
	dist := make([][]float64, n)
	for i := range vectors {
		members[i] = []int{i}
		active[i] = true
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := Distance(vectors[i], vectors[j], m)
			dist[i][j], dist[j][i] = d, d
		}
	}

	nn := make([]int, n)
	nnd := make([]float64, n)
	nearest := func(i int) {
		nn[i], nnd[i] = -1, math.Inf(1)
		for j := i + 1; j < n; j++ {
			if active[j] && dist[i][j] < nnd[i] {
				nn[i], nnd[i] = j, dist[i][j]
			}
		}
	}
	for i := 0; i < n; i++ {
		nearest(i)
	}

	for left := n; left > 1; left-- {
		bi, best := -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if active[i] && nn[i] >= 0 && nnd[i] < best {
				bi, best = i, nnd[i]
			}
		}
		var bj int
		if bi < 0 {
			// Only infinite distances remain; merge in index order.
			bi, bj = firstTwo(active)
		} else {
			bj = nn[bi]
		}

		members[bi] = append(members[bi], members[bj]...)
		members[bj] = nil
		active[bj] = false
		for k := 0; k < n; k++ {
			if active[k] && k != bi {
				d := math.Max(dist[bi][k], dist[bj][k])
				dist[bi][k], dist[k][bi] = d, d
			}
		}

		// Merged distances only grow, so a cached neighbour stays valid
		// unless it was one of the merged clusters.
		for i := 0; i < n; i++ {
			if active[i] && (i == bi || nn[i] == bi || nn[i] == bj) {
				nearest(i)
			}
		}
	}

	for i, ok := range active {
		if ok {
			return members[i]
		}
	}
	return nil
}

func firstTwo(active []bool) (int, int) {
	a := -1
	for i, ok := range active {
		if !ok {
			continue
		}
		if a < 0 {
			a = i
			continue
		}
		return a, i
	}
	return a, a
}
