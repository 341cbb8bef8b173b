// Package cmd defines the command-line interface for git-stats.
package cmd

import (
	"github.com/fcuny/git-stats/internal/contract"
	"github.com/fcuny/git-stats/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(drisCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().Int("recency-period", contract.DefaultRecencyMonths, "Length of the recency window in months")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Bool("detail", false, "Print raw and normalized sub-scores per contributor")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored bands in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("history-backend", string(schema.SQLiteBackend), "Run tracking backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of statsCmd to Viper
	statsCmd.Flags().IntP("limit", "l", 0, "Number of contributors to display (0 = all)")
	statsCmd.Flags().StringP("path", "f", "", "Only count changes to files whose path contains this substring")
	statsCmd.Flags().String("language", "", "Only count changes to files of this language")
	statsCmd.Flags().String("since", "", "Only count commits authored on or after this date (YYYY-MM-DD)")
	statsCmd.Flags().String("until", "", "Only count commits authored on or before this date (YYYY-MM-DD)")
	if err := viper.BindPFlags(statsCmd.Flags()); err != nil {
		contract.LogFatal("Error binding stats flags", err)
	}

	// Bind all flags of drisCmd to Viper
	drisCmd.Flags().String("files", "", "Comma-separated list of file paths to find experts for")
	drisCmd.Flags().Int("top", contract.DefaultTopN, "Number of experts to show per file")
	if err := viper.BindPFlags(drisCmd.Flags()); err != nil {
		contract.LogFatal("Error binding dris flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
