// Package cmd defines the command-line interface for nestscore.
package cmd

import (
	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(propertyCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(catalogCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(weightsCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the property subcommands to the parent property command
	propertyCmd.AddCommand(propertyAddCmd)
	propertyCmd.AddCommand(propertyListCmd)
	propertyCmd.AddCommand(propertyShowCmd)
	propertyCmd.AddCommand(propertyAnswerCmd)
	propertyCmd.AddCommand(propertyUpdateCmd)
	propertyCmd.AddCommand(propertyDeleteCmd)
	propertyCmd.AddCommand(propertyLocateCmd)

	// Add the weights subcommands to the parent weights command
	weightsCmd.AddCommand(weightsShowCmd)
	weightsCmd.AddCommand(weightsSetCmd)
	weightsCmd.AddCommand(weightsResetCmd)

	// Add the settings subcommands to the parent settings command
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsWorkCmd)
	settingsCmd.AddCommand(settingsThemeCmd)

	// Add the share subcommands to the parent share command
	shareCmd.AddCommand(shareEncodeCmd)
	shareCmd.AddCommand(shareDecodeCmd)
	shareCmd.AddCommand(shareImportCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Bool("detail", false, "Print per-category scores in listings")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of results to display")
	rootCmd.PersistentFlags().String("sort", string(schema.SortByScore), "Sort order: score or name or created or price")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("catalog", "", "Path to a YAML question catalogue (defaults to the built-in one)")
	rootCmd.PersistentFlags().String("weights-override", "", "Category weights for this run (format: 'location:30,legal:5')")
	rootCmd.PersistentFlags().String("record-backend", string(schema.SQLiteBackend), "Record backend: sqlite or mysql or postgresql or memory")
	rootCmd.PersistentFlags().String("record-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.NoneBackend), "Score history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for score history (must differ from record-db-connect)")
	rootCmd.PersistentFlags().String("work-postcode", "", "Work postcode for distance, overriding the stored one")
	rootCmd.PersistentFlags().String("geocode", "no", "Look up postcode coordinates online (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("geocode-url", contract.DefaultGeocodeURL, "Base URL of a postcodes.io compatible API")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("emoji", "no", "Enable emojis in output headers (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Property fields are per-invocation data, so they stay out of Viper
	for _, c := range []*cobra.Command{propertyAddCmd, propertyUpdateCmd} {
		c.Flags().String("name", "", "Short name for the property")
		c.Flags().String("address", "", "Street address")
		c.Flags().String("postcode", "", "UK postcode")
		c.Flags().Int("price", 0, "Asking price or monthly rent")
		c.Flags().String("agent", "", "Letting or estate agent")
		c.Flags().String("viewing-date", "", "Viewing date (free text)")
		c.Flags().String("url", "", "Link to the listing")
		c.Flags().String("notes", "", "Free-form notes")
	}

	distanceCmd.Flags().String("from", "", "Starting point as 'lat,lng' or a postcode")
	distanceCmd.Flags().String("to", "", "Destination as 'lat,lng' or a postcode")

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
