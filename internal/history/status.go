package history

import (
	"fmt"

	"github.com/fcuny/git-stats/internal/contract"
	"github.com/fcuny/git-stats/schema"
)

// PrintHistoryStatus prints history store status information.
func PrintHistoryStatus(status contract.HistoryStatus) {
	fmt.Printf("History Backend: %s\n", status.Backend)
	if status.Backend == schema.NoneBackend {
		fmt.Println("Run tracking is disabled.")
		return
	}
	if status.Location != "" {
		fmt.Printf("Location: %s\n", status.Location)
	}
	fmt.Printf("Total Runs: %d\n", status.RunCount)
	fmt.Printf("Total Score Records: %d\n", status.ScoreCount)
	if status.RunCount > 0 {
		fmt.Printf("Last Run: %s\n", status.LastRun.Format("2006-01-02 15:04:05"))
	}
}
