package runstore

import (
	"fmt"

	"github.com/keymemory/KETIPreDataIntegration/schema"
)

// PrintRunStatus prints run tracking status information.
func PrintRunStatus(status schema.RunStoreStatus) {
	fmt.Printf("Run Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		fmt.Println("Run tracking is disabled.")
		return
	}
	fmt.Printf("Location: %s\n", status.Location)
	fmt.Printf("Total Runs: %d\n", status.TotalRuns)
	if status.TotalRuns > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRun.Format("2006-01-02 15:04:05"))
	}
}
