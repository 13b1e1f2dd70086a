package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/causeway-db/causeway/cmd/causeway/commands"
	"github.com/causeway-db/causeway/config"
	"github.com/causeway-db/causeway/logger"
	"github.com/causeway-db/causeway/version"
)

var rootCmd = &cobra.Command{
	Use:   "causeway",
	Short: "Causeway - SQL schema migration and seeding orchestrator",
	Long: `Causeway - Versioned schema migrations and data seeding for SQLite.

Causeway discovers SQL scripts, tracks what has been applied in a journal
keyed by content hash, and applies pending upgrades in order. Downgrade
scripts pair with upgrades by naming convention, and seed scripts run under
per-folder policies (run-once, run-always, run-if-changed).

Examples:
  causeway init            # Write a default causeway.toml
  causeway up              # Apply pending migrations
  causeway up --dry-run    # Show what would be applied
  causeway down --last     # Revert the most recent migration
  causeway status          # Show applied, pending, and orphaned migrations
  causeway seed            # Run due seed scripts
  causeway watch           # Re-run migrations when scripts change`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.InitializeWithLevel(false, logger.VerbosityToLevel(verbosity)); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		return cfg.CheckRequiredVersion(version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.UpCmd)
	rootCmd.AddCommand(commands.DownCmd)
	rootCmd.AddCommand(commands.StatusCmd)
	rootCmd.AddCommand(commands.SeedCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.InitCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
