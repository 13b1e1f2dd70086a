package commands

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/causeway-db/causeway/config"
	"github.com/causeway-db/causeway/errors"
)

// InitCmd writes a default configuration file
var InitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default causeway.toml in the current directory",
	RunE: func(cmd *cobra.Command, args []string) error {
		const path = "causeway.toml"

		if _, err := os.Stat(path); err == nil {
			return errors.Newf("%s already exists", path)
		}

		if err := config.Persist(config.Default(), path); err != nil {
			return err
		}

		pterm.Success.Printf("Wrote %s\n", path)
		return nil
	},
}
