// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster groups scholarship records into explorable clusters.
// It builds a numeric feature matrix from heterogeneous record fields,
// partitions it with k-means, Ward agglomerative, or DBSCAN clustering,
// and derives quality metrics, per-cluster summaries, and a 2D projection
// for charting.
package cluster

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

const defaultSeed = 42

// Engine clusters scholarship records. It carries two pieces of state: the
// random seed for k-means initialization, and an append-only categorical
// encoder cache that keeps category codes stable across runs. An engine is
// scoped to one logical session and is not safe for concurrent use.
type Engine struct {
	seed int64

	// now supplies the reference time for deadline-derived features.
	// Replaced in tests.
	now func() time.Time

	// codes maps feature name -> label -> integer code. Entries are only
	// ever added, so a label encodes identically for the engine's lifetime.
	codes map[string]map[string]int
}

// New returns an engine with the default seed.
func New() *Engine {
	return NewSeeded(defaultSeed)
}

// NewSeeded returns an engine using the given k-means seed.
func NewSeeded(seed int64) *Engine {
	return &Engine{
		seed:  seed,
		now:   time.Now,
		codes: make(map[string]map[string]int),
	}
}

// Result holds one clustering run: the input records annotated with labels,
// the run metadata, and the standardized feature matrix the labels were
// computed from (retained for projection).
type Result struct {
	Records []types.ClusteredScholarship
	Info    types.RunInfo

	matrix  [][]float64
	columns []string
}

// Cluster partitions records using the given method and feature selection.
//
// Empty input is a valid "no data" outcome and returns (nil, nil). Structural
// failures return (nil, err) where err wraps ErrConfiguration, ErrNoFeatures,
// or ErrAlgorithm; the error text is the caller-facing diagnostic. A run
// never returns partial labels.
func (e *Engine) Cluster(records []types.Scholarship, method types.Method, clusters int, features []types.Feature) (*Result, error) {
	if len(records) == 0 {
		return nil, nil
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("%w: empty feature selection", ErrConfiguration)
	}
	if method.RequiresClusterCount() {
		if clusters <= 0 {
			return nil, fmt.Errorf("%w: cluster count %d must be positive", ErrConfiguration, clusters)
		}
		if clusters >= len(records) {
			return nil, fmt.Errorf("%w: cluster count %d must be less than record count %d",
				ErrConfiguration, clusters, len(records))
		}
	}

	matrix, columns, err := e.buildMatrix(records, features)
	if err != nil {
		return nil, err
	}

	var (
		labels []int
		info   types.RunInfo
	)
	switch method {
	case types.MethodKMeans:
		labels, info, err = e.runKMeans(matrix, clusters)
	case types.MethodHierarchical:
		labels, info, err = e.runHierarchical(matrix, clusters)
	case types.MethodDBSCAN:
		labels, info, err = e.runDBSCAN(matrix)
	default:
		return nil, fmt.Errorf("%w: unsupported method %q", ErrConfiguration, method)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAlgorithm, err)
	}

	annotated := make([]types.ClusteredScholarship, len(records))
	for i, rec := range records {
		annotated[i] = types.ClusteredScholarship{Scholarship: rec, Cluster: labels[i]}
	}

	info.Method = method
	info.Features = append([]types.Feature(nil), features...)
	info.Scholarships = len(records)

	return &Result{
		Records: annotated,
		Info:    info,
		matrix:  matrix,
		columns: columns,
	}, nil
}

// runKMeans partitions the matrix into exactly k clusters with seeded
// k-means and reports silhouette score and inertia.
func (e *Engine) runKMeans(matrix [][]float64, k int) ([]int, types.RunInfo, error) {
	rng := rand.New(rand.NewSource(e.seed))
	labels, inertia := kmeans(matrix, k, rng)

	score, err := silhouette(matrix, labels)
	if err != nil {
		return nil, types.RunInfo{}, err
	}

	info := types.RunInfo{
		RequestedClusters: k,
		Clusters:          k,
		Silhouette:        score,
		Inertia:           inertia,
	}
	return labels, info, nil
}

// runHierarchical cuts a Ward-linkage agglomerative tree at exactly k
// clusters and reports the silhouette score.
func (e *Engine) runHierarchical(matrix [][]float64, k int) ([]int, types.RunInfo, error) {
	labels := wardCluster(matrix, k)

	score, err := silhouette(matrix, labels)
	if err != nil {
		return nil, types.RunInfo{}, err
	}

	info := types.RunInfo{
		RequestedClusters: k,
		Clusters:          k,
		Silhouette:        score,
	}
	return labels, info, nil
}

// runDBSCAN derives eps from the data, clusters by density, and reports
// cluster count, noise count, and a silhouette score over non-noise points.
func (e *Engine) runDBSCAN(matrix [][]float64) ([]int, types.RunInfo, error) {
	eps := estimateEps(matrix)
	minPts := len(matrix) / 20
	if minPts < 2 {
		minPts = 2
	}

	labels := dbscan(matrix, eps, minPts)

	clusters, noise := 0, 0
	seen := make(map[int]bool)
	for _, l := range labels {
		if l == noiseLabel {
			noise++
		} else if !seen[l] {
			seen[l] = true
			clusters++
		}
	}

	// Silhouette over non-noise points, when at least two real clusters
	// exist and noise does not comprise the whole dataset.
	score := 0.0
	if clusters > 1 && noise < len(labels) {
		var subMatrix [][]float64
		var subLabels []int
		for i, l := range labels {
			if l != noiseLabel {
				subMatrix = append(subMatrix, matrix[i])
				subLabels = append(subLabels, l)
			}
		}
		if len(subLabels) > 1 {
			s, err := silhouette(subMatrix, subLabels)
			if err != nil {
				return nil, types.RunInfo{}, err
			}
			score = s
		}
	}

	info := types.RunInfo{
		Clusters:    clusters,
		Silhouette:  score,
		Eps:         eps,
		NoisePoints: noise,
	}
	return labels, info, nil
}
