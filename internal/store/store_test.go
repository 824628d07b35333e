// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/scholarship-engine/internal/dataset"
	"github.com/pdiddy/scholarship-engine/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.StoreConfig{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestImportAndList(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	summary, err := s.Import(ctx, dataset.Sample(), io.Discard)
	require.NoError(t, err)
	assert.Equal(t, len(dataset.Sample()), summary.Added)
	assert.Zero(t, summary.Updated)
	assert.Zero(t, summary.Failed)

	records, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, len(dataset.Sample()))

	// Ordered by descending amount.
	for i := 1; i < len(records); i++ {
		assert.GreaterOrEqual(t, records[i-1].Amount, records[i].Amount)
	}

	// Demographics survive the JSON round trip and are never nil.
	for _, r := range records {
		assert.NotNil(t, r.TargetDemographics)
	}
}

func TestImportUpserts(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	rec := types.Scholarship{
		ID: "s1", Title: "Original", Amount: 1000,
		Category: "General", TargetDemographics: []string{},
	}
	_, err := s.Import(ctx, []types.Scholarship{rec}, io.Discard)
	require.NoError(t, err)

	rec.Title = "Renamed"
	rec.Amount = 2000
	summary, err := s.Import(ctx, []types.Scholarship{rec}, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Updated)
	assert.Zero(t, summary.Added)

	records, err := s.List(ctx, ListOptions{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Renamed", records[0].Title)
	assert.Equal(t, 2000.0, records[0].Amount)
}

func TestListFilters(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Import(ctx, dataset.Sample(), io.Discard)
	require.NoError(t, err)

	tests := []struct {
		name  string
		opts  ListOptions
		check func(t *testing.T, records []types.Scholarship)
	}{
		{
			name: "by category",
			opts: ListOptions{Category: "STEM"},
			check: func(t *testing.T, records []types.Scholarship) {
				require.NotEmpty(t, records)
				for _, r := range records {
					assert.Equal(t, "STEM", r.Category)
				}
			},
		},
		{
			name: "by amount range",
			opts: ListOptions{MinAmount: 5000, MaxAmount: 12000},
			check: func(t *testing.T, records []types.Scholarship) {
				require.NotEmpty(t, records)
				for _, r := range records {
					assert.GreaterOrEqual(t, r.Amount, 5000.0)
					assert.LessOrEqual(t, r.Amount, 12000.0)
				}
			},
		},
		{
			name: "result cap",
			opts: ListOptions{MaxResults: 3},
			check: func(t *testing.T, records []types.Scholarship) {
				assert.Len(t, records, 3)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := s.List(ctx, tt.opts)
			require.NoError(t, err)
			tt.check(t, records)
		})
	}
}

func TestSaveAndListRuns(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	info := types.RunInfo{
		Method:            types.MethodKMeans,
		Features:          []types.Feature{types.FeatureAmount},
		Scholarships:      2,
		RequestedClusters: 2,
		Clusters:          2,
		Silhouette:        0.87,
		Inertia:           1.5,
	}
	clustered := []types.ClusteredScholarship{
		{Scholarship: types.Scholarship{ID: "a"}, Cluster: 0},
		{Scholarship: types.Scholarship{ID: "b"}, Cluster: 1},
	}

	id, err := s.SaveRun(ctx, info, clustered)
	require.NoError(t, err)
	assert.Positive(t, id)

	second := info
	second.Method = types.MethodDBSCAN
	second.RequestedClusters = 0
	_, err = s.SaveRun(ctx, second, clustered)
	require.NoError(t, err)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	// Newest first.
	assert.Equal(t, types.MethodDBSCAN, runs[0].Info.Method)
	assert.Equal(t, types.MethodKMeans, runs[1].Info.Method)
	assert.Equal(t, 0, runs[1].Labels["a"])
	assert.Equal(t, 1, runs[1].Labels["b"])
	assert.Equal(t, 0.87, runs[1].Info.Silhouette)
	assert.False(t, runs[0].CreatedAt.IsZero())
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	s, err := NewStore(types.StoreConfig{DataDir: dir})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	ctx := context.Background()
	_, err = s.Import(ctx, dataset.Sample(), io.Discard)
	require.NoError(t, err)

	yamlPath, err := s.ExportYAML(ctx, ListOptions{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, indexDir, "export.yaml"), yamlPath)

	jsonPath, err := s.ExportJSON(ctx, ListOptions{Category: "STEM"})
	require.NoError(t, err)

	// Exports are loadable datasets.
	full, err := dataset.Load(yamlPath)
	require.NoError(t, err)
	assert.Len(t, full, len(dataset.Sample()))

	stem, err := dataset.Load(jsonPath)
	require.NoError(t, err)
	require.NotEmpty(t, stem)
	for _, r := range stem {
		assert.Equal(t, "STEM", r.Category)
	}

	_, err = os.Stat(jsonPath)
	require.NoError(t, err)
}

func TestCount(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = s.Import(ctx, dataset.Sample(), io.Discard)
	require.NoError(t, err)

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(dataset.Sample()), n)
}
