// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dataset loads scholarship records from disk and enforces the
// record invariants once, at the boundary: demographics default to an empty
// slice, text fields are trimmed, amounts are non-negative, and GPA
// requirements stay within [0, 4]. Downstream stages rely on these
// invariants instead of re-checking per access.
package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

// Load reads scholarship records from a YAML or JSON file (selected by
// extension), normalizes them, and validates the record invariants.
func Load(path string) ([]types.Scholarship, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading dataset: %w", err)
	}

	var records []types.Scholarship
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("parsing dataset %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported dataset format %q: use .yaml, .yml, or .json", ext)
	}

	for i := range records {
		Normalize(&records[i])
		if err := Validate(records[i]); err != nil {
			return nil, fmt.Errorf("record %d (%s): %w", i, records[i].Title, err)
		}
	}
	return records, nil
}

// Write saves records to a YAML or JSON file, selected by extension.
func Write(path string, records []types.Scholarship) error {
	var (
		data []byte
		err  error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(records)
	case ".json":
		data, err = json.MarshalIndent(records, "", "  ")
	default:
		return fmt.Errorf("unsupported dataset format %q: use .yaml, .yml, or .json", ext)
	}
	if err != nil {
		return fmt.Errorf("marshaling dataset: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Normalize fills defaults in place: a generated ID when missing, an empty
// demographics slice instead of nil, and trimmed text fields.
func Normalize(s *types.Scholarship) {
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.Title = strings.TrimSpace(s.Title)
	s.Category = strings.TrimSpace(s.Category)
	s.Deadline = strings.TrimSpace(s.Deadline)

	if s.TargetDemographics == nil {
		s.TargetDemographics = []string{}
	}
	for i, d := range s.TargetDemographics {
		s.TargetDemographics[i] = strings.TrimSpace(d)
	}
}

// Validate checks the record invariants. Records failing validation are
// rejected at load time rather than patched.
func Validate(s types.Scholarship) error {
	if s.Amount < 0 {
		return fmt.Errorf("amount %v is negative", s.Amount)
	}
	if s.GPARequirement < 0 || s.GPARequirement > 4 {
		return fmt.Errorf("gpa_requirement %v outside [0, 4]", s.GPARequirement)
	}
	return nil
}
