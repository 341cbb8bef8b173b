// main is the entry point for the git-stats CLI.
package main

import (
	"fmt"
	"os"

	"github.com/fcuny/git-stats/cmd"
)

func main() {
	err := cmd.Execute()
	cmd.CloseHistoryStore()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
