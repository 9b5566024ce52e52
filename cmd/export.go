package cmd

import (
	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/spf13/cobra"
)

// exportCmd writes every scored property to a file.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all scored properties as csv, json or parquet",
	Long: `Score every property and export the results.

CSV has one column per weighted category. Parquet requires --output-file.

Examples:
  # Spreadsheet friendly export
  nestscore export --output csv --output-file properties.csv

  # Parquet for analytics tools
  nestscore export --output parquet --output-file properties.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteExport(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot export properties", err)
		}
	},
}
