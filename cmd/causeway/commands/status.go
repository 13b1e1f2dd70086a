package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// StatusCmd shows migration and seed state
var StatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show applied, pending, and orphaned migrations",
	Long: `Compare discovered scripts against the journal and report three groups:
migrations already applied, migrations awaiting application, and journal
entries whose source script was removed (due for downgrade). Seed scripts
with a pending run are listed as well.`,
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

		ctx := cmd.Context()

		applied, err := engine.AppliedUpgrades(ctx)
		if err != nil {
			return err
		}
		pending, err := engine.PendingUpgrades(ctx)
		if err != nil {
			return err
		}
		orphaned, err := engine.EntriesToDowngrade(ctx)
		if err != nil {
			return err
		}

		pterm.Printf("%s %s\n", pterm.LightCyan("Database:"), pterm.White(cfg.Database.Path))

		pterm.Printf("\n%s %d\n", pterm.LightCyan("Applied:"), len(applied))
		for _, m := range applied {
			pterm.Printf("  %s %s\n", pterm.LightGreen("✓"), pterm.White(m.Name))
		}

		pterm.Printf("\n%s %d\n", pterm.LightCyan("Pending:"), len(pending))
		for _, m := range pending {
			pterm.Printf("  %s %s\n", pterm.Yellow("•"), pterm.White(m.Name))
		}

		if len(orphaned) > 0 {
			pterm.Printf("\n%s %d\n", pterm.LightCyan("Removed (due for downgrade):"), len(orphaned))
			for _, entry := range orphaned {
				pterm.Printf("  %s %s %s\n",
					pterm.Red("↩"),
					pterm.White(entry.Name),
					pterm.Gray("applied "+entry.AppliedAt.Format(time.RFC3339)))
			}
		}

		runner, err := buildSeedRunner(cfg, database)
		if err != nil {
			return err
		}
		seeds, err := runner.Pending(ctx)
		if err != nil {
			// Seed directory is optional; report migrations regardless
			pterm.Printf("\n%s %v\n", pterm.Yellow("Seeds unavailable:"), err)
			return nil
		}

		pterm.Printf("\n%s %d\n", pterm.LightCyan("Seeds due:"), len(seeds))
		for _, s := range seeds {
			pterm.Printf("  %s %s\n", pterm.Yellow("•"), pterm.White(s.Name))
		}

		return nil
	},
}
