package cmd

import (
	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/spf13/cobra"
)

// catalogCmd prints the question catalogue.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print every question with its category, weight and answer options",
	Long: `Print the question catalogue used for scoring.

Critical questions are marked with '*'. Use --catalog to load a custom YAML
catalogue instead of the built-in one.`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCatalog(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot print catalogue", err)
		}
	},
}
