// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math"
	"math/rand"
)

const (
	kmeansRestarts = 10
	kmeansMaxIter  = 300
)

// kmeans runs Lloyd's algorithm with k-means++ initialization. It performs
// kmeansRestarts independent runs from the shared rng and keeps the
// partition with the lowest inertia, so results are deterministic for a
// fixed seed. The caller guarantees 0 < k <= len(matrix).
func kmeans(matrix [][]float64, k int, rng *rand.Rand) (labels []int, inertia float64) {
	bestInertia := math.Inf(1)
	var bestLabels []int

	for r := 0; r < kmeansRestarts; r++ {
		l, in := kmeansOnce(matrix, k, rng)
		if in < bestInertia {
			bestInertia = in
			bestLabels = l
		}
	}
	return bestLabels, bestInertia
}

func kmeansOnce(matrix [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	centroids := seedCentroids(matrix, k, rng)
	labels := make([]int, len(matrix))

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := assign(matrix, centroids, labels)
		repairEmptyClusters(matrix, centroids, labels, k)
		updateCentroids(matrix, centroids, labels, k)
		if !changed && iter > 0 {
			break
		}
	}

	inertia := 0.0
	for i, row := range matrix {
		inertia += sqDist(row, centroids[labels[i]])
	}
	return labels, inertia
}

// seedCentroids picks k initial centroids with k-means++ weighting: each
// subsequent centroid is sampled proportionally to its squared distance
// from the nearest already-chosen centroid.
func seedCentroids(matrix [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, cloneRow(matrix[rng.Intn(len(matrix))]))

	weights := make([]float64, len(matrix))
	for len(centroids) < k {
		total := 0.0
		for i, row := range matrix {
			d := math.Inf(1)
			for _, c := range centroids {
				if sd := sqDist(row, c); sd < d {
					d = sd
				}
			}
			weights[i] = d
			total += d
		}

		var next int
		if total == 0 {
			// All points coincide with a centroid; any choice is equivalent.
			next = rng.Intn(len(matrix))
		} else {
			target := rng.Float64() * total
			cum := 0.0
			next = len(matrix) - 1
			for i, w := range weights {
				cum += w
				if cum >= target {
					next = i
					break
				}
			}
		}
		centroids = append(centroids, cloneRow(matrix[next]))
	}
	return centroids
}

// assign labels each point with its nearest centroid, lowest index winning
// ties. Reports whether any label changed.
func assign(matrix [][]float64, centroids [][]float64, labels []int) bool {
	changed := false
	for i, row := range matrix {
		best, bestDist := 0, math.Inf(1)
		for c, centroid := range centroids {
			if d := sqDist(row, centroid); d < bestDist {
				best, bestDist = c, d
			}
		}
		if labels[i] != best {
			labels[i] = best
			changed = true
		}
	}
	return changed
}

// repairEmptyClusters donates the point farthest from its centroid to each
// empty cluster, so the partition always uses exactly k labels.
func repairEmptyClusters(matrix [][]float64, centroids [][]float64, labels []int, k int) {
	sizes := make([]int, k)
	for _, l := range labels {
		sizes[l]++
	}
	for c := 0; c < k; c++ {
		if sizes[c] > 0 {
			continue
		}
		donor, donorDist := -1, -1.0
		for i, row := range matrix {
			if sizes[labels[i]] <= 1 {
				continue
			}
			if d := sqDist(row, centroids[labels[i]]); d > donorDist {
				donor, donorDist = i, d
			}
		}
		if donor < 0 {
			continue
		}
		sizes[labels[donor]]--
		labels[donor] = c
		sizes[c] = 1
		centroids[c] = cloneRow(matrix[donor])
	}
}

func updateCentroids(matrix [][]float64, centroids [][]float64, labels []int, k int) {
	dims := len(matrix[0])
	sums := make([][]float64, k)
	counts := make([]int, k)
	for c := range sums {
		sums[c] = make([]float64, dims)
	}
	for i, row := range matrix {
		c := labels[i]
		counts[c]++
		for j, v := range row {
			sums[c][j] += v
		}
	}
	for c := 0; c < k; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := range sums[c] {
			centroids[c][j] = sums[c][j] / float64(counts[c])
		}
	}
}

func sqDist(a, b []float64) float64 {
	total := 0.0
	for i := range a {
		d := a[i] - b[i]
		total += d * d
	}
	return total
}

func cloneRow(row []float64) []float64 {
	out := make([]float64, len(row))
	copy(out, row)
	return out
}
