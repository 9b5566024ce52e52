package cmd

import (
	"github.com/huangsam/nestscore/core"
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/spf13/cobra"
)

// settingsCmd groups the user settings commands.
var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show and change the stored user settings",
}

// settingsShowCmd prints the settings record.
var settingsShowCmd = &cobra.Command{
	Use:     "show",
	Short:   "Print the stored settings",
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSettingsShow(rootCtx, cfg, storeManager); err != nil {
			contract.LogFatal("Cannot show settings", err)
		}
	},
}

// settingsWorkCmd stores the work postcode.
var settingsWorkCmd = &cobra.Command{
	Use:   "work [postcode]",
	Short: "Store the work postcode used for distances",
	Long: `Store the work postcode. With --geocode yes its coordinates are looked up
too, so property details can show the distance to work. Run without a
postcode to clear it.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		postcode := ""
		if len(args) == 1 {
			postcode = args[0]
		}
		if err := core.ExecuteSettingsWork(rootCtx, cfg, storeManager, newGeocoder(), postcode); err != nil {
			contract.LogFatal("Cannot set work postcode", err)
		}
	},
}

// settingsThemeCmd stores the display theme.
var settingsThemeCmd = &cobra.Command{
	Use:       "theme <light|dark|system>",
	Short:     "Store the display theme",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"light", "dark", "system"},
	PreRunE:   sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteSettingsTheme(rootCtx, cfg, storeManager, args[0]); err != nil {
			contract.LogFatal("Cannot set theme", err)
		}
	},
}
