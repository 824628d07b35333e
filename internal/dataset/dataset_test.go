// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDataset(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeDataset(t, "scholarships.yaml", `
- id: s1
  title: "  STEM Award  "
  amount: 5000
  category: STEM
  target_demographics: ["Women in STEM"]
  gpa_requirement: 3.5
  deadline: "2026-03-15"
- title: Untitled Grant
  amount: 1000
  category: General
`)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "s1", records[0].ID)
	assert.Equal(t, "STEM Award", records[0].Title, "titles are trimmed")
	assert.Equal(t, 5000.0, records[0].Amount)

	// Records without an ID get a generated one; missing demographics
	// default to an empty slice, never nil.
	assert.NotEmpty(t, records[1].ID)
	assert.NotNil(t, records[1].TargetDemographics)
	assert.Empty(t, records[1].TargetDemographics)
}

func TestLoadJSON(t *testing.T) {
	path := writeDataset(t, "scholarships.json", `[
  {"id": "j1", "title": "Arts Prize", "amount": 2500, "category": "Arts", "gpa_requirement": 2.5}
]`)

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Arts Prize", records[0].Title)
	assert.Equal(t, 2.5, records[0].GPARequirement)
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "negative amount",
			content: "- title: Bad\n  amount: -100\n  category: General\n",
			errMsg:  "negative",
		},
		{
			name:    "gpa above scale",
			content: "- title: Bad\n  amount: 100\n  gpa_requirement: 4.5\n",
			errMsg:  "outside [0, 4]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDataset(t, "bad.yaml", tt.content)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeDataset(t, "scholarships.csv", "id,title\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported dataset format")
}

func TestWriteRoundTrip(t *testing.T) {
	records := Sample()

	for _, name := range []string{"out.yaml", "out.json"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, Write(path, records))

			loaded, err := Load(path)
			require.NoError(t, err)
			require.Len(t, loaded, len(records))
			assert.Equal(t, records[0].Title, loaded[0].Title)
			assert.Equal(t, records[0].TargetDemographics, loaded[0].TargetDemographics)
		})
	}
}

func TestSampleIsValid(t *testing.T) {
	records := Sample()
	require.NotEmpty(t, records)

	ids := map[string]bool{}
	for _, r := range records {
		require.NoError(t, Validate(r))
		assert.NotNil(t, r.TargetDemographics)
		assert.False(t, ids[r.ID], "duplicate sample ID %s", r.ID)
		ids[r.ID] = true
	}
}

func TestSampleReturnsFreshCopies(t *testing.T) {
	first := Sample()
	first[0].Title = "mutated"
	second := Sample()
	assert.NotEqual(t, "mutated", second[0].Title)
}
