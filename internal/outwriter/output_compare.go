package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintComparison outputs a comparison matrix, dispatching on the configured output format.
func PrintComparison(result schema.ComparisonResult, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForComparison(w, result)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComparisonTable(w, result, cfg)
		}, "Wrote table")
	}
}

// cellFormatter renders matrix cells. Best cells get a trailing '*', and
// with colors on they are bold green while worst cells are dimmed.
type cellFormatter struct {
	best  func(...any) string
	worst func(...any) string
}

func newCellFormatter(useColors bool) cellFormatter {
	if !useColors {
		return cellFormatter{best: fmt.Sprint, worst: fmt.Sprint}
	}
	return cellFormatter{
		best:  color.New(color.FgGreen, color.Bold).SprintFunc(),
		worst: color.New(color.Faint).SprintFunc(),
	}
}

func (f cellFormatter) format(cell schema.ComparisonCell) string {
	s := strconv.Itoa(cell.Score)
	switch {
	case cell.Best:
		return f.best(s + " *")
	case cell.Worst:
		return f.worst(s)
	default:
		return s
	}
}

// writeComparisonTable renders one column per property and one row per category.
func writeComparisonTable(w io.Writer, result schema.ComparisonResult, cfg *contract.Config) error {
	if _, err := fmt.Fprintf(w, "%s\n", heading("⚖️ ", fmt.Sprintf("Comparing %d properties", len(result.Columns)), cfg)); err != nil {
		return err
	}

	nameWidth := GetMaxTableNameWidth(cfg, 0)
	headers := []string{"Category"}
	for _, col := range result.Columns {
		headers = append(headers, contract.TruncateText(col.Name, nameWidth))
	}

	cf := newCellFormatter(cfg.UseColors)
	var data [][]string
	for _, row := range result.Categories {
		data = append(data, matrixRow(row, cf))
	}
	data = append(data, matrixRow(result.Overall, cf))

	completion := []string{"Completion"}
	for _, c := range result.Completion {
		completion = append(completion, formatPercent(c))
	}
	data = append(data, completion)

	price := []string{"Price"}
	for _, col := range result.Columns {
		price = append(price, formatPrice(col.Price))
	}
	data = append(data, price)

	if err := writeTable(w, headers, data); err != nil {
		return err
	}

	if result.BestOverall != nil {
		for _, col := range result.Columns {
			if col.PropertyID == *result.BestOverall {
				if _, err := fmt.Fprintf(w, "Best overall: %s (#%d)\n", col.Name, col.PropertyID); err != nil {
					return err
				}
				break
			}
		}
	}
	return nil
}

func matrixRow(row schema.ComparisonRow, cf cellFormatter) []string {
	out := []string{row.Name}
	for _, cell := range row.Cells {
		out = append(out, cf.format(cell))
	}
	return out
}

// writeCSVResultsForComparison writes one line per (row, property) pair.
func writeCSVResultsForComparison(w io.Writer, result schema.ComparisonResult) error {
	header := []string{"row", "property_id", "property_name", "score", "best", "worst"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		rows := append(append([]schema.ComparisonRow{}, result.Categories...), result.Overall)
		for _, row := range rows {
			for i, cell := range row.Cells {
				if i >= len(result.Columns) {
					break
				}
				col := result.Columns[i]
				rec := []string{
					row.Key,
					strconv.FormatInt(col.PropertyID, 10),
					col.Name,
					strconv.Itoa(cell.Score),
					strconv.FormatBool(cell.Best),
					strconv.FormatBool(cell.Worst),
				}
				if err := cw.Write(rec); err != nil {
					return err
				}
			}
		}
		return nil
	})
}
