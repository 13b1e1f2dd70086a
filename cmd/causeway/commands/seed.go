package commands

import (
	"github.com/spf13/cobra"
)

// SeedCmd runs due seed scripts
var SeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Run due seed scripts",
	Long: `Discover seed scripts and run the ones whose policy says they are due.
Policies come from folder or file-name tokens (run-once, run-always,
run-if-changed), with the nearest enclosing folder winning; scripts with
no token use the configured default strategy.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		runner, err := buildSeedRunner(cfg, database)
		if err != nil {
			return err
		}

		return printBatch(runner.Run(cmd.Context()), "seed")
	},
}
