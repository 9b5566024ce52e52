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

// historyBackendFromConfig reads the history backend, treating empty as none.
func historyBackendFromConfig() (schema.DatabaseBackend, string, error) {
	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	if backend == "" {
		backend = schema.NoneBackend
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads the minimal configuration needed for history operations.
func historySetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}

	// Records stay in memory since history commands never read properties
	if err := iostore.InitStores(schema.MemoryBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads configuration for migrations without opening
// the stores, so migrations can run against a fresh database.
func historyMigrateSetup() error {
	if err := readConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := historyBackendFromConfig()
	if err != nil {
		return err
	}

	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = iostore.GetHistoryDBFilePath()
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for migrate.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on score history management.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage score history tracking and exports",
	Long: `Manage the score history used to see how rankings change over time.

When a history backend is set, every list, compare and export run stores:
- Run metadata (timestamp, command, weights, duration)
- The overall and per-category scores of each property

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show history statistics
  export  - Export runs and scores to Parquet
  clear   - Remove all history
  migrate - Run database schema migrations

Examples:
  # Turn tracking on for one run
  nestscore property list --history-backend sqlite

  # Export for analysis in pandas or DuckDB
  nestscore history export --history-backend sqlite --output-file history.parquet`,
}

// historyClearCmd clears the score history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all score history",
	Long: `Delete all stored score runs and property scores.

WARNING: This action cannot be undone. Consider exporting data first.`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iostore.CloseStores()
		if err := iostore.ClearHistory(cfg.HistoryBackend, iostore.GetHistoryDBFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear history", err)
		}
		fmt.Println("History cleared successfully.")
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display score history statistics and connection details",
	Long: `Show the backend in use, whether it is reachable, the number of runs
stored, the newest and oldest run, and the size of each history table.`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		history := storeManager.GetHistoryStore()
		if history == nil {
			contract.LogFatal("Failed to get history status", fmt.Errorf("history backend is %s", cfg.HistoryBackend))
		}
		status, err := history.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		iostore.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyExportCmd exports score history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export score history to Parquet",
	Long: `Export all stored runs and property scores to Parquet.

Two files are written next to --output-file: one for runs and one for
property scores.

Requires: --output-file parameter

Examples:
  nestscore history export --output-file history.parquet
  duckdb -c "SELECT * FROM read_parquet('history.parquet.score_runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iostore.ExportHistory(storeManager.GetHistoryStore(), cfg.OutputFile, os.Stdout); err != nil {
			contract.LogFatal("Failed to export history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the score history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  nestscore history migrate --history-backend sqlite

  # Roll back every migration
  nestscore history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		summary, err := iostore.MigrateHistory(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion)
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println(summary)
	},
}
