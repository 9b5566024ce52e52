package cmd

import (
	"strings"

	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/spf13/cobra"
)

// weightsCmd groups the category weight commands.
var weightsCmd = &cobra.Command{
	Use:   "weights",
	Short: "Show and change how much each category counts",
	Long: `Category weights decide how category scores combine into the overall score.

Weights are resolved from the catalogue defaults, then stored settings, then
the 'weights' config key and --weights-override. A weight of 0 excludes the
category from the overall score.`,
}

// weightsShowCmd prints the effective weights.
var weightsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the effective weight of every category and its source",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeightsShow(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show weights", err)
		}
	},
}

// weightsSetCmd stores new weights.
var weightsSetCmd = &cobra.Command{
	Use:   "set <category=weight>...",
	Short: "Store weights for one or more categories",
	Long: `Store weights in the settings record.

Examples:
  nestscore weights set location=30 legal=5`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		updates, err := contract.ParseWeightsString(strings.Join(args, ","))
		if err != nil {
			contract.LogFatal("Cannot set weights", err)
		}
		if err := core.ExecuteWeightsSet(rootCtx, cfg, storeManager, updates); err != nil {
			contract.LogFatal("Cannot set weights", err)
		}
	},
}

// weightsResetCmd restores the default weights.
var weightsResetCmd = &cobra.Command{
	Use:     "reset",
	Short:   "Restore the catalogue default weights",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteWeightsReset(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot reset weights", err)
		}
	},
}
