package commands

import (
	"time"

	"github.com/pterm/pterm"

	"github.com/causeway-db/causeway/errors"
	"github.com/causeway-db/causeway/migrate"
)

// printBatch renders a batch result and returns an error if the batch
// failed, so commands exit non-zero on failure.
func printBatch(batch migrate.BatchResult, verb string) error {
	for _, r := range batch.Results {
		// Downgrade results carry no script; their message names the entry
		if r.Successful {
			name := r.Message
			if r.Script != nil {
				name = r.Script.Name
			}
			pterm.Printf("  %s %s %s\n",
				pterm.LightGreen("✓"),
				pterm.White(name),
				pterm.Gray(r.Duration.Round(time.Millisecond).String()))
		} else if r.Script != nil {
			pterm.Printf("  %s %s: %s\n",
				pterm.Red("✗"),
				pterm.White(r.Script.Name),
				failureText(r))
		} else {
			pterm.Printf("  %s %s\n", pterm.Red("✗"), failureText(r))
		}
	}

	if !batch.Successful {
		pterm.Error.Printf("%s failed: %s\n", verb, batch.Message)
		return errors.Newf("%s failed", verb)
	}

	if len(batch.Results) == 0 && batch.Message != "" {
		pterm.Info.Println(batch.Message)
	} else if len(batch.Results) == 0 {
		pterm.Info.Printf("Nothing to %s\n", verb)
	} else {
		pterm.Success.Printf("%s complete: %d script(s)\n", verb, len(batch.Results))
	}
	return nil
}

func failureText(r migrate.Result) string {
	if r.Message != "" {
		return r.Message
	}
	if r.Err != nil {
		return r.Err.Error()
	}
	return "unknown failure"
}
