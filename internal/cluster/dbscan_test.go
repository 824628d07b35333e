// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math"
	"testing"
)

// blob returns count points jittered around (cx, cy) on a small fixed grid.
func blob(cx, cy float64, count int) [][]float64 {
	offsets := [][2]float64{{0, 0}, {0.1, 0}, {0, 0.1}, {0.1, 0.1}, {0.05, 0.05}}
	points := make([][]float64, count)
	for i := range points {
		o := offsets[i%len(offsets)]
		points[i] = []float64{cx + o[0], cy + o[1]}
	}
	return points
}

func TestDBSCANTwoBlobs(t *testing.T) {
	matrix := append(blob(0, 0, 10), blob(10, 10, 10)...)

	labels := dbscan(matrix, 0.5, 2)

	clusters := map[int][]int{}
	for i, l := range labels {
		clusters[l] = append(clusters[l], i)
	}
	if len(clusters) != 2 {
		t.Fatalf("got %d clusters, want 2: %v", len(clusters), clusters)
	}
	if len(clusters[0]) != 10 || len(clusters[1]) != 10 {
		t.Fatalf("cluster sizes %d/%d, want 10/10", len(clusters[0]), len(clusters[1]))
	}
	// First blob is scanned first, so it takes label 0.
	if labels[0] != 0 || labels[10] != 1 {
		t.Errorf("labels[0]=%d labels[10]=%d, want 0 and 1", labels[0], labels[10])
	}
}

func TestDBSCANOutlierIsNoise(t *testing.T) {
	matrix := append(blob(0, 0, 10), blob(10, 10, 10)...)
	matrix = append(matrix, []float64{50, 50})

	labels := dbscan(matrix, 0.5, 2)

	if labels[len(labels)-1] != noiseLabel {
		t.Fatalf("outlier labeled %d, want %d", labels[len(labels)-1], noiseLabel)
	}
	noise := 0
	for _, l := range labels {
		if l == noiseLabel {
			noise++
		}
	}
	if noise != 1 {
		t.Errorf("noise count = %d, want 1", noise)
	}
}

func TestDBSCANAllNoise(t *testing.T) {
	// Points spread too thin for any dense region at minPts 3.
	matrix := [][]float64{{0, 0}, {5, 0}, {10, 0}, {15, 0}}

	labels := dbscan(matrix, 0.5, 3)
	for i, l := range labels {
		if l != noiseLabel {
			t.Errorf("point %d labeled %d, want noise", i, l)
		}
	}
}

func TestEstimateEps(t *testing.T) {
	t.Run("floors at minimum", func(t *testing.T) {
		// Coincident points: every neighbor distance is zero.
		matrix := [][]float64{{1, 1}, {1, 1}, {1, 1}, {1, 1}, {1, 1}}
		if eps := estimateEps(matrix); eps != minEps {
			t.Errorf("eps = %v, want floor %v", eps, minEps)
		}
	})

	t.Run("single point", func(t *testing.T) {
		if eps := estimateEps([][]float64{{0, 0}}); eps != 0.5 {
			t.Errorf("eps = %v, want 0.5 fallback", eps)
		}
	})

	t.Run("scales with spacing", func(t *testing.T) {
		// Evenly spaced line: 4th-neighbor distances grow with spacing.
		narrow := [][]float64{{0}, {1}, {2}, {3}, {4}, {5}, {6}, {7}}
		wide := [][]float64{{0}, {10}, {20}, {30}, {40}, {50}, {60}, {70}}
		if estimateEps(wide) <= estimateEps(narrow) {
			t.Error("eps should grow with point spacing")
		}
	})
}

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"median of odd count", []float64{1, 2, 3}, 50, 2},
		{"interpolated quartile", []float64{1, 2, 3, 4}, 75, 3.25},
		{"single value", []float64{7}, 75, 7},
		{"empty", nil, 75, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("percentile = %v, want %v", got, tt.want)
			}
		})
	}
}
