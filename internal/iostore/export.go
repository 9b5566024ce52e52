package iostore

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/parquet"
)

// ErrNoHistory is returned when an export finds no recorded runs.
var ErrNoHistory = errors.New("no score history found to export")

// ExportHistory writes every run and property score to two Parquet files
// named after outputFile, and reports progress to w.
func ExportHistory(store contract.HistoryStore, outputFile string, w io.Writer) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	if store == nil {
		return ErrNoHistory
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return ErrNoHistory
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total score runs: %d\n", status.TotalRuns)
	_, _ = fmt.Fprintf(w, "Total property scores: %d\n", status.TableSizes[propertyScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve score runs: %w", err)
	}
	scores, err := store.GetAllPropertyScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve property scores: %w", err)
	}

	runsFile := outputFile + ".score_runs.parquet"
	parquetRuns := parquet.ConvertScoreRunRecords(runs)
	if err := parquet.WriteScoreRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write score runs: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d score runs to: %s\n", len(parquetRuns), runsFile)

	scoresFile := outputFile + ".property_scores.parquet"
	parquetScores := parquet.ConvertPropertyScoreRecords(scores)
	if err := parquet.WritePropertyScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write property scores: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d property scores to: %s\n", len(parquetScores), scoresFile)

	return nil
}
