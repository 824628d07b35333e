// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"fmt"
	"math"
)

// silhouette computes the mean silhouette coefficient of a partition, a
// value in [-1, 1] where higher means better-separated, more cohesive
// clusters. Points in singleton clusters contribute 0. Fails when the
// partition has fewer than 2 or more than n-1 distinct labels, which makes
// the coefficient undefined.
func silhouette(matrix [][]float64, labels []int) (float64, error) {
	n := len(labels)
	distinct := make(map[int]int, 8)
	for _, l := range labels {
		distinct[l]++
	}
	if len(distinct) < 2 || len(distinct) > n-1 {
		return 0, fmt.Errorf("silhouette undefined for %d cluster(s) over %d points", len(distinct), n)
	}

	total := 0.0
	for i := range matrix {
		own := labels[i]
		if distinct[own] == 1 {
			continue // singleton clusters score 0
		}

		// Mean distance to every other cluster, tracked per label.
		sums := make(map[int]float64, len(distinct))
		for j := range matrix {
			if i == j {
				continue
			}
			sums[labels[j]] += math.Sqrt(sqDist(matrix[i], matrix[j]))
		}

		a := sums[own] / float64(distinct[own]-1)
		b := math.Inf(1)
		for l, s := range sums {
			if l == own {
				continue
			}
			if m := s / float64(distinct[l]); m < b {
				b = m
			}
		}

		if denom := math.Max(a, b); denom > 0 {
			total += (b - a) / denom
		}
	}
	return total / float64(n), nil
}
