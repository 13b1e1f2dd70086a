package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/causeway-db/causeway/migrate"
)

// WatchCmd watches the migrations directory and applies changes
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run migrations when scripts change",
	Long: `Watch the migrations directory and run the full migration cycle whenever
its contents settle after a change: downgrades for removed scripts first,
then pending upgrades. Intended as a development workflow; stop with
Ctrl-C.`,
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

		watcher, err := migrate.NewWatcher(cfg.Migrations.Dir, func(ctx context.Context) {
			batch := engine.Run(ctx)
			if printErr := printBatch(batch, "apply"); printErr != nil {
				pterm.Warning.Println("Waiting for the next change")
			}
		})
		if err != nil {
			return err
		}

		// Apply whatever is already pending before waiting for changes
		if err := printBatch(engine.Run(cmd.Context()), "apply"); err != nil {
			return err
		}

		watcher.Start()
		defer watcher.Stop()
		pterm.Info.Printf("Watching %s for changes\n", cfg.Migrations.Dir)

		signals := make(chan os.Signal, 1)
		signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
		<-signals
		pterm.Info.Println("Stopping watcher")
		return nil
	},
}
