package cmd

import (
	"errors"

	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/spf13/cobra"
)

// errDistanceArgs is returned when fewer than two points are given.
var errDistanceArgs = errors.New("give two points as arguments or with --from and --to")

// distanceCmd prints the distance between two points.
var distanceCmd = &cobra.Command{
	Use:   "distance [from] [to]",
	Short: "Great-circle distance between two postcodes or coordinates",
	Long: `Print the great-circle distance between two points.

Each point is either 'lat,lng' or a postcode. Postcodes need --geocode yes.

Examples:
  nestscore distance --from 51.5074,-0.1278 --to 53.4808,-2.2426
  nestscore distance "LS1 1AA" "M1 1AA" --geocode yes`,
	Args:    cobra.MaximumNArgs(2),
	PreRunE: sharedSetupWrapper,
	Run: func(cmd *cobra.Command, args []string) {
		from, _ := cmd.Flags().GetString("from")
		to, _ := cmd.Flags().GetString("to")
		switch len(args) {
		case 2:
			from, to = args[0], args[1]
		case 1:
			contract.LogFatal("Cannot compute distance", errDistanceArgs)
		}
		if from == "" || to == "" {
			contract.LogFatal("Cannot compute distance", errDistanceArgs)
		}
		if err := core.ExecuteDistance(rootCtx, cfg, newGeocoder(), from, to); err != nil {
			contract.LogFatal("Cannot compute distance", err)
		}
	},
}
