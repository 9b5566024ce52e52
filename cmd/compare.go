package cmd

import (
	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/spf13/cobra"
)

// compareCmd lays out properties side by side.
var compareCmd = &cobra.Command{
	Use:   "compare <id> [id...]",
	Short: "Compare up to 4 properties category by category",
	Long: `Score the given properties and print a matrix with one column per property.

Rows cover every category with a non-zero default weight, followed by the
overall score, completion and price. The best score in a row is marked with
a '*' and the lowest non-zero score that trails the best is dimmed.

Examples:
  # Compare three properties
  nestscore compare 1 4 7

  # Ids can also be comma-separated
  nestscore compare 1,4 --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		ids, err := core.ParseIDs(args)
		if err != nil {
			contract.LogFatal("Cannot compare properties", err)
		}
		if err := core.ExecuteCompare(rootCtx, cfg, storeManager, ids); err != nil {
			contract.LogFatal("Cannot compare properties", err)
		}
	},
}
