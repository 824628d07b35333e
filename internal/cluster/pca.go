// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

// Project reduces a run's standardized feature matrix to 2 dimensions with
// principal component analysis and packages the coordinates with record
// metadata for charting. Returns nil when the run has fewer than 2 feature
// columns, in which case no 2D view exists.
func (e *Engine) Project(result *Result) *types.Projection {
	if result == nil || len(result.columns) < 2 {
		return nil
	}

	coords, explained := pca2(result.matrix)

	n := len(result.Records)
	p := &types.Projection{
		X:                 make([]float64, n),
		Y:                 make([]float64, n),
		Cluster:           make([]int, n),
		Title:             make([]string, n),
		Amount:            make([]float64, n),
		Category:          make([]string, n),
		ExplainedVariance: explained,
		TotalVariance:     explained[0] + explained[1],
	}
	for i, rec := range result.Records {
		p.X[i] = coords[i][0]
		p.Y[i] = coords[i][1]
		p.Cluster[i] = rec.Cluster
		p.Title[i] = rec.Title
		p.Amount[i] = rec.Amount
		p.Category[i] = rec.Category
	}
	return p
}

// pca2 projects rows onto the top 2 principal components of their
// covariance matrix and reports the variance fraction each component
// explains. The caller guarantees at least 2 columns.
func pca2(matrix [][]float64) ([][2]float64, [2]float64) {
	n := len(matrix)
	dims := len(matrix[0])

	// Center columns. The matrix is already standardized, but centering
	// again keeps this routine self-contained.
	means := make([]float64, dims)
	for _, row := range matrix {
		for j, v := range row {
			means[j] += v
		}
	}
	for j := range means {
		means[j] /= float64(n)
	}

	// Covariance matrix with the unbiased n-1 denominator. For n == 1 the
	// covariance degenerates to zero, which flows through as zero variance.
	cov := make([][]float64, dims)
	for a := range cov {
		cov[a] = make([]float64, dims)
	}
	denom := float64(n - 1)
	if denom < 1 {
		denom = 1
	}
	for _, row := range matrix {
		for a := 0; a < dims; a++ {
			da := row[a] - means[a]
			for b := a; b < dims; b++ {
				cov[a][b] += da * (row[b] - means[b]) / denom
			}
		}
	}
	for a := 0; a < dims; a++ {
		for b := 0; b < a; b++ {
			cov[a][b] = cov[b][a]
		}
	}

	eigenvalues, eigenvectors := jacobiEigen(cov)

	// Order components by descending eigenvalue; clamp tiny negatives
	// introduced by rotation round-off.
	order := []int{0, 1}
	best, second := -1, -1
	for idx := range eigenvalues {
		if best < 0 || eigenvalues[idx] > eigenvalues[best] {
			second = best
			best = idx
		} else if second < 0 || eigenvalues[idx] > eigenvalues[second] {
			second = idx
		}
	}
	order[0], order[1] = best, second

	totalVar := 0.0
	for idx := range eigenvalues {
		if eigenvalues[idx] < 0 {
			eigenvalues[idx] = 0
		}
		totalVar += eigenvalues[idx]
	}

	var explained [2]float64
	if totalVar > 0 {
		explained[0] = eigenvalues[order[0]] / totalVar
		explained[1] = eigenvalues[order[1]] / totalVar
	}

	// Fix component signs so the largest-magnitude loading is positive,
	// keeping the projection deterministic.
	components := make([][]float64, 2)
	for c, idx := range order {
		vec := make([]float64, dims)
		maxAbs, sign := 0.0, 1.0
		for a := 0; a < dims; a++ {
			vec[a] = eigenvectors[a][idx]
			if abs := math.Abs(vec[a]); abs > maxAbs {
				maxAbs = abs
				if vec[a] < 0 {
					sign = -1
				} else {
					sign = 1
				}
			}
		}
		for a := range vec {
			vec[a] *= sign
		}
		components[c] = vec
	}

	coords := make([][2]float64, n)
	for i, row := range matrix {
		for c := 0; c < 2; c++ {
			dot := 0.0
			for a := 0; a < dims; a++ {
				dot += (row[a] - means[a]) * components[c][a]
			}
			coords[i][c] = dot
		}
	}
	return coords, explained
}

const (
	jacobiMaxSweeps = 100
	jacobiTolerance = 1e-12
)

// jacobiEigen diagonalizes a symmetric matrix with cyclic Jacobi rotations.
// Returns the eigenvalues and a matrix whose columns are the matching
// eigenvectors. Suitable for the small matrices this package produces
// (at most 14 feature columns).
func jacobiEigen(m [][]float64) ([]float64, [][]float64) {
	dims := len(m)

	a := make([][]float64, dims)
	vectors := make([][]float64, dims)
	for i := range a {
		a[i] = make([]float64, dims)
		copy(a[i], m[i])
		vectors[i] = make([]float64, dims)
		vectors[i][i] = 1
	}

	for sweep := 0; sweep < jacobiMaxSweeps; sweep++ {
		off := 0.0
		for p := 0; p < dims; p++ {
			for q := p + 1; q < dims; q++ {
				off += a[p][q] * a[p][q]
			}
		}
		if off < jacobiTolerance {
			break
		}

		for p := 0; p < dims; p++ {
			for q := p + 1; q < dims; q++ {
				if a[p][q] == 0 {
					continue
				}

				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c

				for i := 0; i < dims; i++ {
					aip, aiq := a[i][p], a[i][q]
					a[i][p] = c*aip - s*aiq
					a[i][q] = s*aip + c*aiq
				}
				for i := 0; i < dims; i++ {
					api, aqi := a[p][i], a[q][i]
					a[p][i] = c*api - s*aqi
					a[q][i] = s*api + c*aqi
				}
				for i := 0; i < dims; i++ {
					vip, viq := vectors[i][p], vectors[i][q]
					vectors[i][p] = c*vip - s*viq
					vectors[i][q] = s*vip + c*viq
				}
			}
		}
	}

	values := make([]float64, dims)
	for i := range values {
		values[i] = a[i][i]
	}
	return values, vectors
}
