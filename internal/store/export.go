// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/scholarship-engine/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes the stored scholarships to dataDir/index/export.yaml.
// It supports the same filters as List.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dataDir, indexDir, "export.yaml")
	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the stored scholarships to dataDir/index/export.json.
// It supports the same filters as List.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dataDir, indexDir, "export.json")
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportRecords(ctx context.Context, opts ListOptions) ([]types.Scholarship, error) {
	opts.MaxResults = exportLimit
	return s.List(ctx, opts)
}
