// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import "github.com/pdiddy/scholarship-engine/pkg/types"

// Sample returns a built-in set of realistic scholarship records so the
// pipeline can run without an external data file. Records come back fresh
// on every call; callers may mutate them freely.
func Sample() []types.Scholarship {
	records := []types.Scholarship{
		{
			ID:                 "sample-001",
			Title:              "Women in Technology Excellence Award",
			Amount:             10000,
			Category:           "Computer Science",
			TargetDemographics: []string{"Women in STEM"},
			GPARequirement:     3.5,
			Deadline:           "03/15/2026",
			Description:        "Supports women pursuing undergraduate degrees in computing.",
		},
		{
			ID:                 "sample-002",
			Title:              "First Generation Achievers Grant",
			Amount:             5000,
			Category:           "General",
			TargetDemographics: []string{"First-generation college student"},
			GPARequirement:     3.0,
			Deadline:           "04/01/2026",
		},
		{
			ID:                 "sample-003",
			Title:              "Pride in STEM Scholarship",
			Amount:             7500,
			Category:           "STEM",
			TargetDemographics: []string{"LGBTQ+"},
			GPARequirement:     3.2,
			Deadline:           "02/28/2026",
		},
		{
			ID:                 "sample-004",
			Title:              "Future Physicians Diversity Fund",
			Amount:             15000,
			Category:           "Medicine",
			TargetDemographics: []string{"Underrepresented minority"},
			GPARequirement:     3.4,
			Deadline:           "05/15/2026",
		},
		{
			ID:                 "sample-005",
			Title:              "Rural Engineers of Tomorrow",
			Amount:             8000,
			Category:           "Engineering",
			TargetDemographics: []string{"Rural/Small town background"},
			GPARequirement:     3.0,
			Deadline:           "06/30/2026",
		},
		{
			ID:                 "sample-006",
			Title:              "Veterans Education Advancement Award",
			Amount:             12000,
			Category:           "General",
			TargetDemographics: []string{"Veterans", "First-generation college student"},
			GPARequirement:     2.8,
			Deadline:           "04/20/2026",
		},
		{
			ID:                 "sample-007",
			Title:              "Community College Transfer Scholarship",
			Amount:             3000,
			Category:           "General",
			TargetDemographics: []string{"Community college transfer"},
			GPARequirement:     3.0,
			Deadline:           "05/01/2026",
		},
		{
			ID:                 "sample-008",
			Title:              "Creative Arts Portfolio Prize",
			Amount:             4500,
			Category:           "Arts",
			TargetDemographics: []string{},
			GPARequirement:     0,
			Deadline:           "03/31/2026",
		},
		{
			ID:                 "sample-009",
			Title:              "National Merit STEM Fellowship",
			Amount:             25000,
			Category:           "STEM",
			TargetDemographics: []string{"Women in STEM", "Underrepresented minority"},
			GPARequirement:     3.8,
			Deadline:           "01/31/2026",
		},
		{
			ID:                 "sample-010",
			Title:              "Open Opportunity Grant",
			Amount:             1000,
			Category:           "General",
			TargetDemographics: []string{},
			GPARequirement:     0,
			Deadline:           "rolling",
		},
	}
	for i := range records {
		Normalize(&records[i])
	}
	return records
}
