// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the scholarship-engine
// pipeline: scholarship records, cluster run results, summaries, and stage
// configuration.
package types

// Scholarship holds one scholarship record as supplied by the dataset
// boundary. Optional fields are defaulted at load time; downstream stages
// may assume the invariants documented per field.
type Scholarship struct {
	// ID is a unique opaque identifier. The dataset loader assigns one to
	// records that arrive without it.
	ID string `json:"id" yaml:"id"`

	// Title is the scholarship name.
	Title string `json:"title" yaml:"title"`

	// Amount is the award value in dollars. Never negative.
	Amount float64 `json:"amount" yaml:"amount"`

	// Category is a short label such as "STEM" or "General". The category
	// vocabulary is open.
	Category string `json:"category" yaml:"category"`

	// TargetDemographics lists the demographic groups the scholarship
	// targets. Defaults to an empty slice, never nil after normalization.
	TargetDemographics []string `json:"target_demographics" yaml:"target_demographics"`

	// GPARequirement is the minimum GPA on a 4.0 scale. 0.0 means no
	// requirement. Always within [0, 4].
	GPARequirement float64 `json:"gpa_requirement" yaml:"gpa_requirement"`

	// Deadline is the application deadline as free text. May be empty or
	// malformed; consumers must tolerate unparsable values.
	Deadline string `json:"deadline,omitempty" yaml:"deadline,omitempty"`

	// Description is free text. Not used by clustering.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Eligibility is free text. Not used by clustering.
	Eligibility string `json:"eligibility,omitempty" yaml:"eligibility,omitempty"`
}

// ClusteredScholarship is a Scholarship annotated with the cluster it was
// assigned to. Cluster is the noise label -1 for DBSCAN outliers.
type ClusteredScholarship struct {
	Scholarship `yaml:",inline"`

	Cluster int `json:"cluster" yaml:"cluster"`
}
