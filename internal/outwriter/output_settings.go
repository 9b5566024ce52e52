package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
)

// PrintSettings outputs the stored user settings.
func PrintSettings(s schema.Settings, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, s)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"key", "value"}, func(cw *csv.Writer) error {
				for _, kv := range settingsPairs(s) {
					if err := cw.Write(kv[:]); err != nil {
						return err
					}
				}
				return nil
			})
		}, "Wrote CSV")
	case schema.ParquetOut:
		return errParquetUnsupported
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			for _, kv := range settingsPairs(s) {
				if _, err := fmt.Fprintf(w, "%-20s %s\n", kv[0]+":", kv[1]); err != nil {
					return err
				}
			}
			return nil
		}, "Wrote settings")
	}
}

// settingsPairs flattens settings into ordered key/value pairs.
func settingsPairs(s schema.Settings) [][2]string {
	coords := "-"
	if s.WorkCoordinates != nil {
		coords = fmt.Sprintf("%.6f,%.6f", s.WorkCoordinates.Latitude, s.WorkCoordinates.Longitude)
	}
	pairs := [][2]string{
		{"theme", string(s.Theme)},
		{"work_postcode", orDash(s.WorkPostcode)},
		{"work_coordinates", coords},
	}
	for _, id := range slices.Sorted(maps.Keys(s.Weights)) {
		pairs = append(pairs, [2]string{"weight." + id, strconv.Itoa(s.Weights[id])})
	}
	return pairs
}
