package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/nestscore/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readAll reads every row of a Parquet file written with WriteXxxParquet.
func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func sampleRuns() []ScoreRun {
	start := time.Date(2026, 3, 14, 9, 30, 0, 123456789, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int32(1500)
	params := `{"sort":"score","limit":25}`
	return []ScoreRun{
		{
			RunID:           1,
			RunToken:        "2f1b7c0e-5d0a-4c8e-9e43-0c8b2b7f6a11",
			StartTime:       start,
			EndTime:         &end,
			RunDurationMs:   &duration,
			TotalProperties: 3,
			ConfigParams:    &params,
		},
		{
			RunID:     2,
			RunToken:  "8a4f2d63-1b9e-4f70-a2c5-77d0e3b1c9f4",
			StartTime: start.Add(time.Hour),
		},
	}
}

func TestScoreRunStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(ScoreRun))
	for _, col := range []string{"run_id", "run_token", "start_time", "end_time", "run_duration_ms", "total_properties", "config_params"} {
		_, ok := s.Lookup(col)
		assert.True(t, ok, "column %s should exist", col)
	}
}

func TestPropertyScoreRowStructTags(t *testing.T) {
	s := parquet.SchemaOf(new(PropertyScoreRow))
	for _, col := range []string{"run_id", "property_id", "property_name", "scored_at", "overall_score", "score_label", "completion"} {
		_, ok := s.Lookup(col)
		assert.True(t, ok, "column %s should exist", col)
	}
}

func TestWriteScoreRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")
	data := sampleRuns()
	require.NoError(t, WriteScoreRunsParquet(data, outputPath))

	got := readAll[ScoreRun](t, outputPath)
	require.Len(t, got, len(data))

	assert.Equal(t, data[0].RunToken, got[0].RunToken)
	assert.Equal(t, int32(3), got[0].TotalProperties)
	require.NotNil(t, got[0].EndTime)
	assert.WithinDuration(t, *data[0].EndTime, *got[0].EndTime, time.Nanosecond)
	require.NotNil(t, got[0].RunDurationMs)
	assert.Equal(t, int32(1500), *got[0].RunDurationMs)
	require.NotNil(t, got[0].ConfigParams)
	assert.JSONEq(t, *data[0].ConfigParams, *got[0].ConfigParams)

	// An unfinished run keeps its nullable columns empty
	assert.Nil(t, got[1].EndTime)
	assert.Nil(t, got[1].RunDurationMs)
	assert.Nil(t, got[1].ConfigParams)
}

func TestWritePropertyScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")
	scoredAt := time.Date(2026, 3, 14, 9, 30, 1, 0, time.UTC)
	records := []schema.PropertyScoreRecord{
		{
			RunID:          1,
			PropertyID:     7,
			PropertyName:   "Maple Cottage",
			ScoredAt:       scoredAt,
			OverallScore:   78,
			Label:          "Good",
			Completion:     42,
			CategoryScores: map[string]int32{"safety": 90, "location": 65},
		},
		{
			RunID:        1,
			PropertyID:   8,
			PropertyName: "Flat 3, Harbour View",
			ScoredAt:     scoredAt,
			Label:        "Poor",
		},
	}
	require.NoError(t, WritePropertyScoresParquet(ConvertPropertyScoreRecords(records), outputPath))

	got := readAll[PropertyScoreRow](t, outputPath)
	require.Len(t, got, 2)
	assert.Equal(t, "Maple Cottage", got[0].PropertyName)
	assert.Equal(t, int32(78), got[0].OverallScore)
	assert.Equal(t, []CategoryScoreColumn{
		{CategoryID: "location", Score: 65},
		{CategoryID: "safety", Score: 90},
	}, got[0].CategoryScores)
	assert.Empty(t, got[1].CategoryScores)
	assert.WithinDuration(t, scoredAt, got[1].ScoredAt, time.Nanosecond)
}

func TestWriteParquet_EmptyData(t *testing.T) {
	dir := t.TempDir()

	runsPath := filepath.Join(dir, "empty_runs.parquet")
	require.NoError(t, WriteScoreRunsParquet([]ScoreRun{}, runsPath))
	info, err := os.Stat(runsPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "file should contain the schema even if empty")

	scoresPath := filepath.Join(dir, "empty_scores.parquet")
	require.NoError(t, WritePropertyScoresParquet(nil, scoresPath))
	_, err = os.Stat(scoresPath)
	require.NoError(t, err)
}

func TestWriteParquet_InvalidPath(t *testing.T) {
	err := WriteScoreRunsParquet(sampleRuns(), "/nonexistent/directory/runs.parquet")
	require.Error(t, err)

	err = WritePropertyScoresParquet([]PropertyScoreRow{{PropertyID: 1}}, "/nonexistent/directory/scores.parquet")
	require.Error(t, err)
}

func TestConvertScoreRunRecords(t *testing.T) {
	end := time.Now()
	records := []schema.ScoreRunRecord{
		{RunID: 4, RunToken: "tok", StartTime: end.Add(-time.Second), EndTime: &end, TotalProperties: 2},
	}
	got := ConvertScoreRunRecords(records)
	require.Len(t, got, 1)
	assert.Equal(t, int64(4), got[0].RunID)
	assert.Equal(t, "tok", got[0].RunToken)
	assert.Same(t, records[0].EndTime, got[0].EndTime)
	assert.Equal(t, int32(2), got[0].TotalProperties)

	assert.Empty(t, ConvertScoreRunRecords(nil))
}
