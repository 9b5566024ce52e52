package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintWeights outputs the effective category weights.
func PrintWeights(weights []schema.EffectiveWeight, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, weights)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForWeights(w, weights)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			headers := []string{"Category", "Name", "Default", "Weight", "Source"}
			var data [][]string
			for _, ew := range weights {
				data = append(data, []string{
					ew.CategoryID,
					ew.CategoryName,
					strconv.Itoa(ew.DefaultWeight),
					strconv.Itoa(ew.Weight),
					string(ew.Source),
				})
			}
			return writeTable(w, headers, data)
		}, "Wrote table")
	}
}

func writeCSVResultsForWeights(w io.Writer, weights []schema.EffectiveWeight) error {
	header := []string{"category_id", "category", "default_weight", "weight", "source"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, ew := range weights {
			rec := []string{
				ew.CategoryID,
				ew.CategoryName,
				strconv.Itoa(ew.DefaultWeight),
				strconv.Itoa(ew.Weight),
				string(ew.Source),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
