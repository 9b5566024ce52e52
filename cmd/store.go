package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/nestscore/internal/contract"
	"github.com/huangsam/nestscore/internal/iostore"
	"github.com/huangsam/nestscore/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// recordSetup loads the minimal configuration needed for record store operations.
func recordSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("record-backend"))
	if backend == "" {
		backend = schema.SQLiteBackend
	}
	connStr := viper.GetString("record-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// History is not needed to inspect or clear records
	if err := iostore.InitStores(backend, connStr, "", ""); err != nil {
		return fmt.Errorf("failed to initialize record store: %w", err)
	}

	cfg.RecordBackend = backend
	cfg.RecordDBConnect = connStr

	return nil
}

// recordSetupWrapper wraps recordSetup to provide PreRunE for store commands.
func recordSetupWrapper(_ *cobra.Command, _ []string) error {
	return recordSetup()
}

// storeCmd focused on record store management.
//
// Note: store subcommands skip the full sharedSetup so a broken catalogue
// or weight override never blocks inspecting the database.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the property record store",
	Long: `Manage the database holding your properties, answers and settings.

Supported backends: SQLite (default), MySQL, PostgreSQL, or Memory (lost on exit)

Subcommands:
  status - Show record counts and connection info
  clear  - Remove every property and the stored settings

Examples:
  # Check the store
  nestscore store status

  # Use PostgreSQL instead of SQLite
  NESTSCORE_RECORD_BACKEND=postgresql NESTSCORE_RECORD_DB_CONNECT="host=... dbname=..." nestscore store status`,
}

// storeClearCmd clears the record store.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every property and the stored settings",
	Long: `Delete all properties, answers and settings from the configured backend.

WARNING: This action cannot be undone. Consider 'nestscore share encode properties' first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the record tables`,
	PreRunE: recordSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		// Release the SQLite handle before removing the file
		iostore.CloseStores()
		if err := iostore.ClearRecords(cfg.RecordBackend, iostore.GetRecordDBFilePath(), cfg.RecordDBConnect); err != nil {
			contract.LogFatal("Failed to clear records", err)
		}
		fmt.Println("Records cleared successfully.")
	},
}

// storeStatusCmd shows record store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display record store statistics and connection details",
	Long: `Show the backend in use, whether it is reachable, how many properties are
stored, the newest and oldest property, and whether custom settings exist.`,
	PreRunE: recordSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetRecordStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		iostore.PrintRecordStatus(os.Stdout, status)
	},
}
