// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import "math"

// wardCluster performs agglomerative clustering with Ward linkage, merging
// until exactly k clusters remain. Cluster distances are maintained as
// squared Euclidean values and updated with the Lance-Williams recurrence.
// Output labels are numbered 0..k-1 in order of each cluster's first member.
// The caller guarantees 0 < k <= len(matrix).
func wardCluster(matrix [][]float64, k int) []int {
	n := len(matrix)

	// dist[i][j] is the Ward merge cost between active clusters i and j.
	// Initial clusters are singletons, where the Ward cost reduces to half
	// the squared Euclidean distance; the constant factor does not change
	// the merge order, so plain squared distances are used throughout.
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = sqDist(matrix[i], matrix[j])
			}
		}
	}

	active := make([]bool, n)
	size := make([]int, n)
	member := make([]int, n) // member[p] = cluster index of point p
	for i := range active {
		active[i] = true
		size[i] = 1
		member[i] = i
	}

	for remaining := n; remaining > k; remaining-- {
		// Find the cheapest active pair, lowest indices winning ties.
		bi, bj, best := -1, -1, math.Inf(1)
		for i := 0; i < n; i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < n; j++ {
				if !active[j] {
					continue
				}
				if dist[i][j] < best {
					bi, bj, best = i, j, dist[i][j]
				}
			}
		}

		// Merge bj into bi and update distances to every other cluster with
		// the Lance-Williams formula for Ward linkage.
		ni, nj := float64(size[bi]), float64(size[bj])
		for m := 0; m < n; m++ {
			if !active[m] || m == bi || m == bj {
				continue
			}
			nm := float64(size[m])
			d := ((ni+nm)*dist[bi][m] + (nj+nm)*dist[bj][m] - nm*dist[bi][bj]) / (ni + nj + nm)
			dist[bi][m] = d
			dist[m][bi] = d
		}

		active[bj] = false
		size[bi] += size[bj]
		for p := range member {
			if member[p] == bj {
				member[p] = bi
			}
		}
	}

	// Relabel surviving clusters 0..k-1 by first-member order.
	relabel := make(map[int]int, k)
	labels := make([]int, n)
	for p, c := range member {
		l, ok := relabel[c]
		if !ok {
			l = len(relabel)
			relabel[c] = l
		}
		labels[p] = l
	}
	return labels
}
