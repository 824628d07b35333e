// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math/rand"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

const (
	// recommendMinRecords is the smallest input for which candidate counts
	// are evaluated; below it the fixed default of 2 is returned.
	recommendMinRecords = 4

	// recommendMaxClusters caps the candidate range.
	recommendMaxClusters = 10

	// recommendDefault is the fallback cluster count.
	recommendDefault = 2
)

// Recommend selects a cluster count by silhouette analysis: it runs k-means
// for every candidate from 2 up to min(10, n/2) and returns the count with
// the highest score, ties going to the lowest count. Inputs too small to
// evaluate — or whose feature matrix cannot be built — get the fixed
// default of 2 with an empty score table.
func (e *Engine) Recommend(records []types.Scholarship, features []types.Feature) types.Recommendation {
	fallback := types.Recommendation{
		Clusters: recommendDefault,
		Scores:   map[int]float64{},
		Basis:    "default",
	}

	if len(records) < recommendMinRecords {
		return fallback
	}

	matrix, _, err := e.buildMatrix(records, features)
	if err != nil {
		return fallback
	}

	maxClusters := len(records) / 2
	if maxClusters > recommendMaxClusters {
		maxClusters = recommendMaxClusters
	}

	scores := make(map[int]float64)
	best, bestScore := 0, 0.0
	for k := 2; k <= maxClusters; k++ {
		rng := rand.New(rand.NewSource(e.seed))
		labels, _ := kmeans(matrix, k, rng)
		score, err := silhouette(matrix, labels)
		if err != nil {
			continue // degenerate candidate, not fatal
		}
		scores[k] = score
		if best == 0 || score > bestScore {
			best, bestScore = k, score
		}
	}

	if len(scores) == 0 {
		return fallback
	}
	return types.Recommendation{
		Clusters: best,
		Scores:   scores,
		Basis:    "silhouette_analysis",
	}
}
