// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import "testing"

func TestWardClusterSeparatedGroups(t *testing.T) {
	matrix := [][]float64{
		{0, 0}, {0.2, 0}, {0, 0.2},
		{10, 10}, {10.2, 10}, {10, 10.2},
		{-10, 10}, {-10.2, 10}, {-10, 10.2},
	}

	labels := wardCluster(matrix, 3)

	// Each spatial group must map to one label, and labels are numbered by
	// first appearance.
	want := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("labels = %v, want %v", labels, want)
		}
	}
}

func TestWardClusterLabelRange(t *testing.T) {
	matrix := [][]float64{{0}, {1}, {2}, {50}, {51}, {100}, {101}, {102}}

	for k := 1; k <= len(matrix); k++ {
		labels := wardCluster(matrix, k)
		seen := map[int]bool{}
		for _, l := range labels {
			if l < 0 || l >= k {
				t.Fatalf("k=%d: label %d outside [0, %d)", k, l, k)
			}
			seen[l] = true
		}
		if len(seen) != k {
			t.Errorf("k=%d: %d labels used, want %d", k, len(seen), k)
		}
	}
}

func TestWardClusterMergesNearestFirst(t *testing.T) {
	// Two tight pairs and one loner; at k=3 the pairs must be intact.
	matrix := [][]float64{{0}, {0.1}, {5}, {5.1}, {100}}

	labels := wardCluster(matrix, 3)
	if labels[0] != labels[1] {
		t.Errorf("nearest pair split: %v", labels)
	}
	if labels[2] != labels[3] {
		t.Errorf("second pair split: %v", labels)
	}
	if labels[4] == labels[0] || labels[4] == labels[2] {
		t.Errorf("loner absorbed early: %v", labels)
	}
}
