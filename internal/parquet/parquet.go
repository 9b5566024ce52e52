// Package parquet exports score history and live scores to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/huangsam/nestscore/schema"
	"github.com/parquet-go/parquet-go"
)

// ScoreRun represents one scoring run.
// This struct maps to the nestscore_score_runs database table.
type ScoreRun struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunToken is the UUID generated when the run began
	RunToken string `parquet:"run_token,snappy"`

	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is nil while a run has not finished
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	RunDurationMs *int32 `parquet:"run_duration_ms,optional,snappy"`

	TotalProperties int32 `parquet:"total_properties,snappy"`

	// ConfigParams contains the JSON-encoded run parameters (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// CategoryScoreColumn is one category score nested inside a PropertyScoreRow.
type CategoryScoreColumn struct {
	CategoryID string `parquet:"category_id,snappy"`
	Score      int32  `parquet:"score,snappy"`
}

// PropertyScoreRow is the score of one property within a run.
// This struct maps to the nestscore_property_scores database table.
type PropertyScoreRow struct {
	// RunID references the parent run, or 0 for a live export
	RunID int64 `parquet:"run_id,snappy"`

	PropertyID   int64     `parquet:"property_id,snappy"`
	PropertyName string    `parquet:"property_name,snappy"`
	ScoredAt     time.Time `parquet:"scored_at,snappy"`
	OverallScore int32     `parquet:"overall_score,snappy"`
	Label        string    `parquet:"score_label,snappy"`

	// Completion is the percentage of catalogue questions answered
	Completion int32 `parquet:"completion,snappy"`

	// CategoryScores is sorted by category id
	CategoryScores []CategoryScoreColumn `parquet:"category_scores,list"`
}

// writeRows writes every row to a new Parquet file at outputPath.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the struct tags of T
	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteScoreRunsParquet writes a slice of ScoreRun structs to a Parquet file.
func WriteScoreRunsParquet(data []ScoreRun, outputPath string) error {
	return writeRows(data, outputPath)
}

// WritePropertyScoresParquet writes a slice of PropertyScoreRow structs to a Parquet file.
func WritePropertyScoresParquet(data []PropertyScoreRow, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertScoreRunRecords converts stored runs for Parquet export.
func ConvertScoreRunRecords(records []schema.ScoreRunRecord) []ScoreRun {
	result := make([]ScoreRun, len(records))
	for i, record := range records {
		result[i] = ScoreRun{
			RunID:           record.RunID,
			RunToken:        record.RunToken,
			StartTime:       record.StartTime,
			EndTime:         record.EndTime,
			RunDurationMs:   record.RunDurationMs,
			TotalProperties: record.TotalProperties,
			ConfigParams:    record.ConfigParams,
		}
	}
	return result
}

// ConvertPropertyScoreRecords converts stored property scores for Parquet export.
func ConvertPropertyScoreRecords(records []schema.PropertyScoreRecord) []PropertyScoreRow {
	result := make([]PropertyScoreRow, len(records))
	for i, record := range records {
		result[i] = PropertyScoreRow{
			RunID:          record.RunID,
			PropertyID:     record.PropertyID,
			PropertyName:   record.PropertyName,
			ScoredAt:       record.ScoredAt,
			OverallScore:   record.OverallScore,
			Label:          record.Label,
			Completion:     record.Completion,
			CategoryScores: categoryColumns(record.CategoryScores),
		}
	}
	return result
}

// categoryColumns flattens a category score map in id order.
func categoryColumns(scores map[string]int32) []CategoryScoreColumn {
	ids := make([]string, 0, len(scores))
	for id := range scores {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	columns := make([]CategoryScoreColumn, len(ids))
	for i, id := range ids {
		columns[i] = CategoryScoreColumn{CategoryID: id, Score: scores[id]}
	}
	return columns
}
