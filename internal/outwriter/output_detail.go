package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintDetail outputs the detail view of one property.
func PrintDetail(detail schema.PropertyDetail, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, detail)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForDetail(w, detail)
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeDetailTable(w, detail, cfg)
		}, "Wrote table")
	}
}

func writeDetailTable(w io.Writer, detail schema.PropertyDetail, cfg *contract.Config) error {
	p := detail.Property
	if _, err := fmt.Fprintf(w, "%s\n", heading("🏠", fmt.Sprintf("%s (#%d)", p.Name, p.ID), cfg)); err != nil {
		return err
	}
	fields := [][2]string{
		{"Address", p.Address},
		{"Postcode", p.Postcode},
		{"Price", formatPrice(p.Price)},
		{"Agent", p.Agent},
		{"Viewing", p.ViewingDate},
		{"Listing", p.ListingURL},
	}
	for _, f := range fields {
		if f[1] == "" {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %-9s %s\n", f[0]+":", f[1]); err != nil {
			return err
		}
	}

	headers := []string{"Category", "Score", "Answered", "Weight", "Label"}
	var data [][]string
	for _, c := range detail.Categories {
		label := "-"
		if c.AnsweredCount > 0 {
			label = scoreLabel(c.Score, cfg)
		}
		data = append(data, []string{
			c.Name,
			strconv.Itoa(c.Score),
			fmt.Sprintf("%d/%d", c.AnsweredCount, c.TotalCount),
			strconv.Itoa(c.Weight),
			label,
		})
	}
	if err := writeTable(w, headers, data); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(w, "Overall: %d (%s)  Completion: %s\n",
		detail.OverallScore, scoreLabel(detail.OverallScore, cfg), formatPercent(detail.Completion)); err != nil {
		return err
	}
	if detail.DistanceLabel != "" {
		if _, err := fmt.Fprintf(w, "Distance to work: %s\n", detail.DistanceLabel); err != nil {
			return err
		}
	}
	if p.Notes != "" {
		if _, err := fmt.Fprintf(w, "Notes: %s\n", p.Notes); err != nil {
			return err
		}
	}
	return nil
}

func writeCSVResultsForDetail(w io.Writer, detail schema.PropertyDetail) error {
	header := []string{"category", "name", "score", "answered", "total", "weight", "label"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, c := range detail.Categories {
			rec := []string{
				c.CategoryID,
				c.Name,
				strconv.Itoa(c.Score),
				strconv.Itoa(c.AnsweredCount),
				strconv.Itoa(c.TotalCount),
				strconv.Itoa(c.Weight),
				c.Label,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return cw.Write([]string{
			"overall", "Overall", strconv.Itoa(detail.OverallScore), "", "",
			"", detail.OverallLabel,
		})
	})
}
