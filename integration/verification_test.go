//go:build basic

// Package integration contains integration tests for nestscore.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/nestscore/core/algo"
	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv keeps records and history in SQLite files under the test HOME.
var sqliteEnv = []string{
	"NESTSCORE_RECORD_BACKEND=sqlite",
	"NESTSCORE_HISTORY_BACKEND=sqlite",
}

// seedProperties adds two properties with contrasting answers.
func seedProperties(t *testing.T, home string) {
	t.Helper()
	steps := [][]string{
		{"property", "add", "--name", "Oak Flat", "--postcode", "LS1 1AA", "--price", "250000"},
		{"property", "add", "--name", "Elm House", "--postcode", "M1 1AA", "--price", "310000"},
		{"property", "answer", "1", "area_safety=very_safe", "parking=private", "fibre_available=yes", "service_charge=0"},
		{"property", "answer", "2", "area_safety=unsafe", "parking=none", "fibre_available=no"},
	}
	for _, args := range steps {
		_, err := runNestscore(t, home, sqliteEnv, args...)
		require.NoError(t, err)
	}
}

// listJSON runs 'property list' with JSON output and decodes the result.
func listJSON(t *testing.T, home string) []schema.EnrichedProperty {
	t.Helper()
	outFile := filepath.Join(home, "list.json")
	_, err := runNestscore(t, home, sqliteEnv, "property", "list", "--output", "json", "--output-file", outFile)
	require.NoError(t, err)

	data, err := os.ReadFile(outFile)
	require.NoError(t, err)
	var props []schema.EnrichedProperty
	require.NoError(t, json.Unmarshal(data, &props))
	return props
}

// TestListMatchesLibraryScoring checks CLI scores against the scoring package.
func TestListMatchesLibraryScoring(t *testing.T) {
	home := t.TempDir()
	seedProperties(t, home)

	props := listJSON(t, home)
	require.Len(t, props, 2)
	assert.Equal(t, "Oak Flat", props[0].Property.Name)
	assert.Equal(t, 1, props[0].Rank)
	assert.Greater(t, props[0].Score.OverallScore, props[1].Score.OverallScore)

	c := catalog.Default()
	for _, p := range props {
		t.Run(p.Property.Name, func(t *testing.T) {
			want := algo.ScoreProperty(c, p.Property, c.DefaultWeights())
			assert.Equal(t, want.OverallScore, p.Score.OverallScore)
			assert.Equal(t, algo.Classify(want.OverallScore).Label, p.Label)
		})
	}
}

// TestWeightsChangeRanking zeroes the safety weight and checks the store keeps it.
func TestWeightsChangeRanking(t *testing.T) {
	home := t.TempDir()
	seedProperties(t, home)

	_, err := runNestscore(t, home, sqliteEnv, "weights", "set", "safety=0")
	require.NoError(t, err)

	out, err := runNestscore(t, home, sqliteEnv, "weights", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "settings")

	_, err = runNestscore(t, home, sqliteEnv, "weights", "reset")
	require.NoError(t, err)

	out, err = runNestscore(t, home, sqliteEnv, "store", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Total Properties: 2")
}

// TestShareRoundTrip moves every property to a second HOME with a share code.
func TestShareRoundTrip(t *testing.T) {
	source := t.TempDir()
	seedProperties(t, source)

	codeFile := filepath.Join(source, "code.txt")
	_, err := runNestscore(t, source, sqliteEnv, "share", "encode", "properties", "--output-file", codeFile)
	require.NoError(t, err)
	raw, err := os.ReadFile(codeFile)
	require.NoError(t, err)
	code := strings.TrimSpace(string(raw))
	require.NotEmpty(t, code)

	target := t.TempDir()
	_, err = runNestscore(t, target, sqliteEnv, "share", "import", code)
	require.NoError(t, err)

	want := listJSON(t, source)
	got := listJSON(t, target)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].Property.Name, got[i].Property.Name)
		assert.Equal(t, want[i].Score.OverallScore, got[i].Score.OverallScore)
	}
}

// TestHistoryExport records runs and exports them to Parquet.
func TestHistoryExport(t *testing.T) {
	home := t.TempDir()
	seedProperties(t, home)

	_, err := runNestscore(t, home, sqliteEnv, "property", "list")
	require.NoError(t, err)
	_, err = runNestscore(t, home, sqliteEnv, "compare", "1", "2")
	require.NoError(t, err)

	outFile := filepath.Join(home, "history.parquet")
	_, err = runNestscore(t, home, sqliteEnv, "history", "export", "--output-file", outFile)
	require.NoError(t, err)

	assert.FileExists(t, outFile+".score_runs.parquet")
	assert.FileExists(t, outFile+".property_scores.parquet")
}
