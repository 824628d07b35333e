// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math"
	"sort"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

// urgentDeadlineDays is the window within which a deadline counts as urgent.
const urgentDeadlineDays = 30

// topDemographicsLimit caps the demographic labels reported per summary.
const topDemographicsLimit = 5

// SummarizeClusters builds a per-cluster summary map for a completed run,
// keyed by cluster label (including the noise label -1 when present).
func (e *Engine) SummarizeClusters(result *Result) map[int]types.ClusterSummary {
	groups := make(map[int][]types.Scholarship)
	for _, rec := range result.Records {
		groups[rec.Cluster] = append(groups[rec.Cluster], rec.Scholarship)
	}

	summaries := make(map[int]types.ClusterSummary, len(groups))
	for label, members := range groups {
		summaries[label] = e.Summarize(members)
	}
	return summaries
}

// Summarize computes descriptive statistics for one cluster slice. An empty
// slice yields a zero-size summary with defaults rather than dividing by
// zero.
func (e *Engine) Summarize(records []types.Scholarship) types.ClusterSummary {
	summary := types.ClusterSummary{
		Size:           len(records),
		TopCategory:    "N/A",
		CategoryCounts: map[string]int{},
	}
	if len(records) == 0 {
		return summary
	}

	summary.MinAmount = math.Inf(1)
	summary.MaxAmount = math.Inf(-1)
	summary.MinGPA = math.Inf(1)
	summary.MaxGPA = math.Inf(-1)

	demoCounts := make(map[string]int)
	for _, r := range records {
		summary.TotalAmount += r.Amount
		summary.MinAmount = math.Min(summary.MinAmount, r.Amount)
		summary.MaxAmount = math.Max(summary.MaxAmount, r.Amount)

		summary.AvgGPA += r.GPARequirement
		summary.MinGPA = math.Min(summary.MinGPA, r.GPARequirement)
		summary.MaxGPA = math.Max(summary.MaxGPA, r.GPARequirement)

		summary.CategoryCounts[r.Category]++
		for _, d := range r.TargetDemographics {
			demoCounts[d]++
		}
	}
	n := float64(len(records))
	summary.AvgAmount = summary.TotalAmount / n
	summary.AvgGPA /= n

	summary.TopCategory = topLabel(summary.CategoryCounts)
	summary.TopDemographics = topLabels(demoCounts, topDemographicsLimit)

	// Deadline stats only over records with a parseable deadline.
	now := e.now()
	daysSum, parsed := 0.0, 0
	for _, r := range records {
		t, ok := parseDeadline(r.Deadline)
		if !ok {
			continue
		}
		days := math.Floor(t.Sub(now).Hours() / 24)
		daysSum += days
		parsed++
		if days <= urgentDeadlineDays {
			summary.UrgentDeadlines++
		}
	}
	if parsed > 0 {
		avg := daysSum / float64(parsed)
		summary.AvgDaysToDeadline = &avg
	}

	return summary
}

// topLabel returns the most frequent label, breaking count ties
// alphabetically.
func topLabel(counts map[string]int) string {
	best, bestCount := "N/A", 0
	for label, count := range counts {
		if count > bestCount || (count == bestCount && bestCount > 0 && label < best) {
			best, bestCount = label, count
		}
	}
	return best
}

// topLabels returns up to limit labels ordered by descending count, ties
// alphabetical.
func topLabels(counts map[string]int, limit int) []types.LabelCount {
	out := make([]types.LabelCount, 0, len(counts))
	for label, count := range counts {
		out = append(out, types.LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Label < out[b].Label
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
