package commands

import (
	"github.com/spf13/cobra"
)

// DownCmd reverts applied migrations
var DownCmd = &cobra.Command{
	Use:   "down",
	Short: "Revert applied migrations",
	Long: `Revert journal entries whose source migration script no longer exists,
most recently applied first. With --last, revert only the most recent
journal entry whether or not its script still exists.

Reverting uses the downgrade content stored in the journal at apply time,
so a deleted script can still be undone.`,
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

		engine, err := buildEngine(cfg, database)
		if err != nil {
			return err
		}

		last, _ := cmd.Flags().GetBool("last")
		if last {
			return printBatch(engine.ApplyLastDowngrade(cmd.Context()), "revert")
		}
		return printBatch(engine.ApplyDowngrades(cmd.Context()), "revert")
	},
}

func init() {
	DownCmd.Flags().Bool("last", false, "Revert only the most recently applied migration")
}
