// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math"
	"sort"
)

// noiseLabel marks points DBSCAN leaves outside every dense region.
const noiseLabel = -1

// minEps is the floor applied to the auto-estimated neighborhood radius.
const minEps = 0.1

// estimateEps derives a DBSCAN radius from the data: the 75th percentile of
// every point's distance to its 4th nearest neighbor (counting the point
// itself), floored at minEps. Falls back to 0.5 for a single point.
func estimateEps(matrix [][]float64) float64 {
	n := len(matrix)
	k := 4
	if n-1 < k {
		k = n - 1
	}
	if k <= 0 {
		return 0.5
	}

	kth := make([]float64, n)
	for i := range matrix {
		dists := make([]float64, n)
		for j := range matrix {
			dists[j] = math.Sqrt(sqDist(matrix[i], matrix[j]))
		}
		sort.Float64s(dists)
		kth[i] = dists[k-1]
	}
	sort.Float64s(kth)

	eps := percentile(kth, 75)
	if eps < minEps {
		eps = minEps
	}
	return eps
}

// percentile computes the p-th percentile of sorted values with linear
// interpolation between ranks.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	hi := int(math.Ceil(rank))
	if lo == hi {
		return sorted[lo]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}

// dbscan labels each point with a non-negative cluster id or noiseLabel.
// A point is core when at least minPts points (itself included) lie within
// eps; clusters grow by breadth-first expansion from core points in index
// order, so labeling is deterministic.
func dbscan(matrix [][]float64, eps float64, minPts int) []int {
	n := len(matrix)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = noiseLabel
	}
	visited := make([]bool, n)
	epsSq := eps * eps

	nextCluster := 0
	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true

		neighbors := regionQuery(matrix, i, epsSq)
		if len(neighbors) < minPts {
			continue // stays noise unless later reached from a core point
		}

		labels[i] = nextCluster
		for qi := 0; qi < len(neighbors); qi++ {
			p := neighbors[qi]
			if labels[p] == noiseLabel {
				labels[p] = nextCluster
			}
			if visited[p] {
				continue
			}
			visited[p] = true
			expansion := regionQuery(matrix, p, epsSq)
			if len(expansion) >= minPts {
				neighbors = append(neighbors, expansion...)
			}
		}
		nextCluster++
	}
	return labels
}

// regionQuery returns the indices of all points within sqrt(epsSq) of point
// i, including i itself.
func regionQuery(matrix [][]float64, i int, epsSq float64) []int {
	var out []int
	for j := range matrix {
		if sqDist(matrix[i], matrix[j]) <= epsSq {
			out = append(out, j)
		}
	}
	return out
}
