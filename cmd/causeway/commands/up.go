package commands

import (
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// UpCmd applies pending migrations
var UpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Long: `Discover migration scripts, compare them against the journal, and apply
every pending upgrade in order. Execution stops at the first failure;
scripts already applied in this run stay applied.`,
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

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		if dryRun {
			pending, err := engine.PendingUpgrades(cmd.Context())
			if err != nil {
				return err
			}
			if len(pending) == 0 {
				pterm.Info.Println("No pending migrations")
				return nil
			}
			pterm.Printf("%s\n", pterm.LightCyan("Would apply:"))
			for _, m := range pending {
				pterm.Printf("  %s %s\n", pterm.Gray("→"), pterm.White(m.Name))
			}
			return nil
		}

		return printBatch(engine.ApplyUpgrades(cmd.Context()), "apply")
	},
}

func init() {
	UpCmd.Flags().Bool("dry-run", false, "List pending migrations without applying them")
}
