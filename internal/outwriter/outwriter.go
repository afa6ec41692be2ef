// Package outwriter has output and writer logic for aligned tables.
package outwriter

import (
	"os"
	"time"

	"golang.org/x/term"

	"github.com/keymemory/KETIPreDataIntegration/internal/contract"
	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for
// the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAlignment prints an alignment result using the configured output
// format.
func (ow *OutWriter) WriteAlignment(result *schema.AlignmentResult, cfg *contract.Config, duration time.Duration) error {
	return WriteAlignment(result, cfg, duration)
}

// getMaxTableColumns caps how many value columns the text table renders so
// wide embedding outputs stay readable in narrow terminals.
func getMaxTableColumns(cfg *contract.Config) int {
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Conservative default for narrow terminals and CI
		detectedWidth = 80
	}

	// One index column plus borders, then roughly 12 cells per numeric column.
	available := (detectedWidth - 12) / 12
	if available < 1 {
		return 1
	}
	if available > 16 {
		return 16
	}
	return available
}
