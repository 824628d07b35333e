// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

// maxDemographicColumns caps the number of binary demographic columns.
const maxDemographicColumns = 10

// defaultDeadlineDays substitutes for a missing or unparsable deadline when
// at least one deadline in the batch parsed.
const defaultDeadlineDays = 365

// deadlineLayouts are the accepted deadline formats, tried in order.
var deadlineLayouts = []string{"2006-01-02", "01/02/2006", time.RFC3339}

// column is one named feature dimension before standardization.
type column struct {
	name   string
	values []float64
}

// buildMatrix converts records into a standardized feature matrix with one
// column group per selected feature, in the fixed order amount, GPA,
// category, demographics, deadline. Features that cannot be derived for the
// whole batch are dropped; the run fails only when nothing remains.
func (e *Engine) buildMatrix(records []types.Scholarship, features []types.Feature) ([][]float64, []string, error) {
	selected := make(map[types.Feature]bool, len(features))
	for _, f := range features {
		selected[f] = true
	}

	var cols []column

	if selected[types.FeatureAmount] {
		vals := make([]float64, len(records))
		for i, r := range records {
			vals[i] = r.Amount
		}
		cols = append(cols, column{name: "amount", values: vals})
	}

	if selected[types.FeatureGPA] {
		vals := make([]float64, len(records))
		for i, r := range records {
			vals[i] = r.GPARequirement
		}
		cols = append(cols, column{name: "gpa_requirement", values: vals})
	}

	if selected[types.FeatureCategory] {
		vals := make([]float64, len(records))
		for i, r := range records {
			vals[i] = float64(e.categoryCode("category", r.Category))
		}
		cols = append(cols, column{name: "category", values: vals})
	}

	if selected[types.FeatureDemographics] {
		cols = append(cols, demographicColumns(records)...)
	}

	if selected[types.FeatureDeadline] {
		if col, ok := e.deadlineColumn(records); ok {
			cols = append(cols, col)
		}
		// Otherwise the deadline column is dropped silently: no record in
		// the batch carried a parseable deadline.
	}

	if len(cols) == 0 {
		return nil, nil, fmt.Errorf("%w: none of the requested features could be computed", ErrNoFeatures)
	}

	matrix := make([][]float64, len(records))
	names := make([]string, len(cols))
	for j, c := range cols {
		names[j] = c.name
	}
	for i := range records {
		row := make([]float64, len(cols))
		for j, c := range cols {
			row[j] = c.values[i]
		}
		matrix[i] = row
	}

	standardize(matrix)
	return matrix, names, nil
}

// categoryCode returns the stable integer code for a label, assigning the
// next free code on first sight. Codes are never removed or renumbered
// within the engine's lifetime.
func (e *Engine) categoryCode(feature, label string) int {
	m, ok := e.codes[feature]
	if !ok {
		m = make(map[string]int)
		e.codes[feature] = m
	}
	code, ok := m[label]
	if !ok {
		code = len(m)
		m[label] = code
	}
	return code
}

// demographicColumns encodes demographics as a diversity count plus one
// binary column per top-10 most frequent label in the current batch. The
// top-10 set is recomputed per call from the batch alone.
func demographicColumns(records []types.Scholarship) []column {
	diversity := make([]float64, len(records))
	freq := make(map[string]int)
	for i, r := range records {
		diversity[i] = float64(len(r.TargetDemographics))
		for _, d := range r.TargetDemographics {
			freq[d]++
		}
	}

	cols := []column{{name: "demo_diversity", values: diversity}}

	labels := make([]string, 0, len(freq))
	for l := range freq {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(a, b int) bool {
		if freq[labels[a]] != freq[labels[b]] {
			return freq[labels[a]] > freq[labels[b]]
		}
		return labels[a] < labels[b]
	})
	if len(labels) > maxDemographicColumns {
		labels = labels[:maxDemographicColumns]
	}

	for _, label := range labels {
		vals := make([]float64, len(records))
		for i, r := range records {
			for _, d := range r.TargetDemographics {
				if d == label {
					vals[i] = 1
					break
				}
			}
		}
		cols = append(cols, column{name: "demo:" + label, values: vals})
	}
	return cols
}

// deadlineColumn encodes deadlines as days from now. Records with an
// unparsable or missing deadline default to defaultDeadlineDays. Returns
// ok=false when no deadline in the batch parses, which drops the feature.
func (e *Engine) deadlineColumn(records []types.Scholarship) (column, bool) {
	now := e.now()
	vals := make([]float64, len(records))
	parsed := 0
	for i, r := range records {
		if t, ok := parseDeadline(r.Deadline); ok {
			vals[i] = math.Floor(t.Sub(now).Hours() / 24)
			parsed++
		} else {
			vals[i] = defaultDeadlineDays
		}
	}
	if parsed == 0 {
		return column{}, false
	}
	return column{name: "days_until_deadline", values: vals}, true
}

// parseDeadline attempts each accepted layout in order.
func parseDeadline(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// standardize rescales every column in place to zero mean and unit variance.
// Constant columns scale by 1, leaving them all zero rather than NaN.
func standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	n := float64(len(matrix))
	for j := range matrix[0] {
		mean := 0.0
		for i := range matrix {
			mean += matrix[i][j]
		}
		mean /= n

		variance := 0.0
		for i := range matrix {
			d := matrix[i][j] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / n)
		if std == 0 {
			std = 1
		}

		for i := range matrix {
			matrix[i][j] = (matrix[i][j] - mean) / std
		}
	}
}
