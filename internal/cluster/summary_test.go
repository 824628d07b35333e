// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"math"
	"testing"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

func TestSummarizeEmptyCluster(t *testing.T) {
	summary := testEngine().Summarize(nil)

	if summary.Size != 0 {
		t.Errorf("size = %d, want 0", summary.Size)
	}
	if summary.AvgAmount != 0 || summary.TotalAmount != 0 {
		t.Errorf("amount stats = %v/%v, want zeros", summary.AvgAmount, summary.TotalAmount)
	}
	if summary.TopCategory != "N/A" {
		t.Errorf("top category = %q, want N/A", summary.TopCategory)
	}
	if summary.AvgDaysToDeadline != nil {
		t.Errorf("deadline average = %v, want nil", *summary.AvgDaysToDeadline)
	}
	if summary.UrgentDeadlines != 0 {
		t.Errorf("urgent deadlines = %d, want 0", summary.UrgentDeadlines)
	}
}

func TestSummarizeStatistics(t *testing.T) {
	records := []types.Scholarship{
		{
			Amount:             1000,
			Category:           "STEM",
			GPARequirement:     3.0,
			TargetDemographics: []string{"Veterans", "Rural"},
			Deadline:           "2026-01-25", // 10 days out: urgent
		},
		{
			Amount:             3000,
			Category:           "STEM",
			GPARequirement:     3.6,
			TargetDemographics: []string{"Veterans"},
			Deadline:           "2026-04-15", // 90 days out
		},
		{
			Amount:             2000,
			Category:           "Arts",
			GPARequirement:     0,
			TargetDemographics: []string{},
			Deadline:           "no fixed date",
		},
	}

	summary := testEngine().Summarize(records)

	if summary.Size != 3 {
		t.Fatalf("size = %d, want 3", summary.Size)
	}
	if summary.AvgAmount != 2000 || summary.TotalAmount != 6000 {
		t.Errorf("avg/total amount = %v/%v, want 2000/6000", summary.AvgAmount, summary.TotalAmount)
	}
	if summary.MinAmount != 1000 || summary.MaxAmount != 3000 {
		t.Errorf("amount range = [%v, %v], want [1000, 3000]", summary.MinAmount, summary.MaxAmount)
	}
	if math.Abs(summary.AvgGPA-2.2) > 1e-12 {
		t.Errorf("avg GPA = %v, want 2.2", summary.AvgGPA)
	}
	if summary.MinGPA != 0 || summary.MaxGPA != 3.6 {
		t.Errorf("GPA range = [%v, %v], want [0, 3.6]", summary.MinGPA, summary.MaxGPA)
	}

	if summary.TopCategory != "STEM" {
		t.Errorf("top category = %q, want STEM", summary.TopCategory)
	}
	if summary.CategoryCounts["STEM"] != 2 || summary.CategoryCounts["Arts"] != 1 {
		t.Errorf("category distribution = %v", summary.CategoryCounts)
	}

	if len(summary.TopDemographics) != 2 {
		t.Fatalf("demographics = %v, want two entries", summary.TopDemographics)
	}
	if summary.TopDemographics[0] != (types.LabelCount{Label: "Veterans", Count: 2}) {
		t.Errorf("top demographic = %+v, want Veterans x2", summary.TopDemographics[0])
	}

	// Deadline stats cover only the two parseable records: (10 + 90) / 2.
	if summary.AvgDaysToDeadline == nil {
		t.Fatal("expected deadline average over parseable records")
	}
	if *summary.AvgDaysToDeadline != 50 {
		t.Errorf("avg days to deadline = %v, want 50", *summary.AvgDaysToDeadline)
	}
	if summary.UrgentDeadlines != 1 {
		t.Errorf("urgent deadlines = %d, want 1", summary.UrgentDeadlines)
	}
}

func TestSummarizeNoParsableDeadlines(t *testing.T) {
	records := []types.Scholarship{
		{Amount: 500, Category: "General", Deadline: "rolling"},
		{Amount: 700, Category: "General"},
	}
	summary := testEngine().Summarize(records)
	if summary.AvgDaysToDeadline != nil {
		t.Errorf("deadline average = %v, want nil", *summary.AvgDaysToDeadline)
	}
	if summary.UrgentDeadlines != 0 {
		t.Errorf("urgent deadlines = %d, want 0", summary.UrgentDeadlines)
	}
}

func TestSummarizeClustersKeyedByLabel(t *testing.T) {
	e := testEngine()
	result, err := e.Cluster(twoBands(), types.MethodKMeans, 2, amountOnly())
	if err != nil {
		t.Fatalf("Cluster: %v", err)
	}

	summaries := e.SummarizeClusters(result)
	if len(summaries) != 2 {
		t.Fatalf("got %d summaries, want 2", len(summaries))
	}
	total := 0
	for label, s := range summaries {
		if label != 0 && label != 1 {
			t.Errorf("unexpected cluster key %d", label)
		}
		if s.Size != 5 {
			t.Errorf("cluster %d size = %d, want 5", label, s.Size)
		}
		total += s.Size
	}
	if total != len(result.Records) {
		t.Errorf("summary sizes total %d, want %d", total, len(result.Records))
	}

	// Each band summary reflects its own amounts.
	for _, s := range summaries {
		if s.MinAmount != s.MaxAmount {
			t.Errorf("band summary spans [%v, %v], want a single amount", s.MinAmount, s.MaxAmount)
		}
	}
}
