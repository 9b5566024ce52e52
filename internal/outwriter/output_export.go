package outwriter

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/nestscore/core/catalog"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/parquet"
	"github.com/huangsam/nestscore/schema"
)

// exportDateLayout is the date format of the Created column.
const exportDateLayout = "2006-01-02"

// PrintExport writes every scored property for use outside nestscore.
func PrintExport(props []schema.ScoredProperty, c *catalog.Catalog, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForProperties(w, props)
		}, "Exported JSON")
	case schema.ParquetOut:
		if cfg.OutputFile == "" {
			return errors.New("--output-file is required for parquet export")
		}
		return writeParquetExport(props, cfg.OutputFile, time.Now())
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVExport(w, props, c.ScoredCategories())
		}, "Exported CSV")
	}
}

// ExportHeader returns the spreadsheet header: fixed columns around one column
// per scored category.
func ExportHeader(categories []schema.Category) []string {
	header := []string{"Name", "Address", "Postcode", "Price", "Agent", "Overall Score"}
	for _, c := range categories {
		header = append(header, c.Name)
	}
	return append(header, "Notes", "Created")
}

func writeCSVExport(w io.Writer, props []schema.ScoredProperty, categories []schema.Category) error {
	return writeCSVWithHeader(w, ExportHeader(categories), func(cw *csv.Writer) error {
		for _, sp := range props {
			p := sp.Property
			rec := []string{
				p.Name,
				p.Address,
				p.Postcode,
				strconv.Itoa(p.Price),
				p.Agent,
				strconv.Itoa(sp.Score.OverallScore),
			}
			for _, c := range categories {
				rec = append(rec, strconv.Itoa(sp.GetCategoryScore(c.ID)))
			}
			created := ""
			if !p.CreatedAt.IsZero() {
				created = p.CreatedAt.Format(exportDateLayout)
			}
			rec = append(rec, p.Notes, created)
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeParquetExport writes score rows without a run id.
func writeParquetExport(props []schema.ScoredProperty, outputFile string, scoredAt time.Time) error {
	records := make([]schema.PropertyScoreRecord, len(props))
	for i, sp := range props {
		records[i] = schema.NewPropertyScoreRecord(0, sp, contract.GetPlainLabel(sp.Score.OverallScore), scoredAt)
	}
	if err := parquet.WritePropertyScoresParquet(parquet.ConvertPropertyScoreRecords(records), outputFile); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Exported Parquet to %s\n", outputFile)
	return nil
}
