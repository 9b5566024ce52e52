package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintCatalog outputs the flattened question catalogue.
func PrintCatalog(rows []schema.CatalogSummary, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, rows)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForCatalog(w, rows)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogTable(w, rows, cfg)
		}, "Wrote table")
	}
}

func writeCatalogTable(w io.Writer, rows []schema.CatalogSummary, cfg *contract.Config) error {
	textWidth := max(terminalWidth(cfg)-70, 30)
	headers := []string{"Category", "Weight", "Question", "Text", "Type", "Choices"}
	var data [][]string
	prev := ""
	for _, r := range rows {
		category, weight := "", ""
		if r.CategoryID != prev {
			category, weight = r.CategoryName, strconv.Itoa(r.Weight)
			prev = r.CategoryID
		}
		text := r.Text
		if r.Critical {
			text += " *"
		}
		data = append(data, []string{
			category,
			weight,
			r.QuestionID,
			contract.TruncateText(text, textWidth),
			string(r.Type),
			contract.TruncateText(r.Choices, 40),
		})
	}
	return writeTable(w, headers, data)
}

func writeCSVResultsForCatalog(w io.Writer, rows []schema.CatalogSummary) error {
	header := []string{"category_id", "category", "weight", "question_id", "text", "type", "choices", "critical"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, r := range rows {
			rec := []string{
				r.CategoryID,
				r.CategoryName,
				strconv.Itoa(r.Weight),
				r.QuestionID,
				r.Text,
				string(r.Type),
				r.Choices,
				strconv.FormatBool(r.Critical),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
