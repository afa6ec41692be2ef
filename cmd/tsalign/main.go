// main is the entry point for the tsalign CLI.
package main

import (
	"fmt"
	"os"

	"github.com/keymemory/KETIPreDataIntegration/cmd"
	"github.com/keymemory/KETIPreDataIntegration/internal/runstore"
	"github.com/keymemory/KETIPreDataIntegration/internal/trainer"
)

func main() {
	cmd.SetTrainer(trainer.New())
	cmd.SetRunManager(runstore.GetManager())
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
