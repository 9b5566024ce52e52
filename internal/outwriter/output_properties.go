package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintProperties outputs ranked properties, dispatching on the configured output format.
func PrintProperties(props []schema.ScoredProperty, total int, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONResultsForProperties(w, props)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForProperties(w, props, scoredCategories(cfg))
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePropertyTable(w, props, total, cfg, duration)
		}, "Wrote table")
	}
}

// scoredCategories returns the categories shown as columns, if a catalogue is loaded.
func scoredCategories(cfg *contract.Config) []schema.Category {
	if cfg.Catalog == nil {
		return nil
	}
	return cfg.Catalog.ScoredCategories()
}

// enrichProperties attaches rank and plain label to each scored property.
func enrichProperties(props []schema.ScoredProperty) []schema.EnrichedProperty {
	out := make([]schema.EnrichedProperty, len(props))
	for i, p := range props {
		out[i] = schema.EnrichedProperty{
			Rank:           i + 1,
			Label:          contract.GetPlainLabel(p.Score.OverallScore),
			ScoredProperty: p,
		}
	}
	return out
}

// writePropertyTable generates and writes the human-readable listing.
func writePropertyTable(w io.Writer, props []schema.ScoredProperty, total int, cfg *contract.Config, duration time.Duration) error {
	categories := scoredCategories(cfg)
	nameWidth := GetMaxTableNameWidth(cfg, len(categories))

	headers := []string{"Rank", "ID", "Name", "Postcode", "Price", "Score", "Label", "Complete"}
	if cfg.Detail {
		for _, c := range categories {
			headers = append(headers, contract.TruncateText(c.Name, categoryColumnWidth))
		}
	}

	var data [][]string
	sum := 0
	for i, p := range props {
		sum += p.Score.OverallScore
		row := []string{
			strconv.Itoa(i + 1),
			strconv.FormatInt(p.Property.ID, 10),
			contract.TruncateText(p.Property.Name, nameWidth),
			orDash(p.Property.Postcode),
			formatPrice(p.Property.Price),
			strconv.Itoa(p.Score.OverallScore),
			scoreLabel(p.Score.OverallScore, cfg),
			formatPercent(p.Completion),
		}
		if cfg.Detail {
			for _, c := range categories {
				row = append(row, strconv.Itoa(p.GetCategoryScore(c.ID)))
			}
		}
		data = append(data, row)
	}

	if err := writeTable(w, headers, data); err != nil {
		return err
	}

	average := 0
	if len(props) > 0 {
		average = sum / len(props)
	}
	if _, err := fmt.Fprintf(w, "Showing %d of %d properties (average score: %d)\n", len(props), total, average); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored in %v with %d workers. Record backend: %s\n", duration, cfg.Workers, cfg.RecordBackend); err != nil {
		return err
	}
	return nil
}

// writeCSVResultsForProperties writes the ranked properties with one column per category.
func writeCSVResultsForProperties(w io.Writer, props []schema.ScoredProperty, categories []schema.Category) error {
	header := []string{"rank", "id", "name", "postcode", "price", "score", "label", "completion"}
	for _, c := range categories {
		header = append(header, c.ID)
	}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, p := range props {
			rec := []string{
				strconv.Itoa(i + 1),
				strconv.FormatInt(p.Property.ID, 10),
				p.Property.Name,
				p.Property.Postcode,
				strconv.Itoa(p.Property.Price),
				strconv.Itoa(p.Score.OverallScore),
				contract.GetPlainLabel(p.Score.OverallScore),
				strconv.Itoa(p.Completion),
			}
			for _, c := range categories {
				rec = append(rec, strconv.Itoa(p.GetCategoryScore(c.ID)))
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeJSONResultsForProperties writes ranked properties with rank and label added.
func writeJSONResultsForProperties(w io.Writer, props []schema.ScoredProperty) error {
	return writeJSON(w, enrichProperties(props))
}
