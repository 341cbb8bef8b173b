package cmd

import (
	"github.com/fcuny/git-stats/core"
	"github.com/fcuny/git-stats/internal/contract"
	"github.com/spf13/cobra"
)

// drisCmd finds the directly responsible individuals for specific files.
var drisCmd = &cobra.Command{
	Use:   "dris [repo-path]",
	Short: "Show the top experts for specific files.",
	Long: `Find the directly responsible individuals (DRIs) for a set of files.

For each requested file, the contributors who touched that file are scored
against each other and the top N are shown. A final overall ranking re-scores
the union of everyone who touched any requested file, which is useful for
picking a reviewer who knows the whole change surface.

File paths are matched exactly as they appear in Git history, relative to the
repository root. A file nobody ever touched still appears in the output, with
an empty expert list.

Examples:
  # Who should review changes to these two files?
  git-stats dris --files core/parser.go,core/lexer.go

  # Top 5 experts per file
  git-stats dris --files api/server.go --top 5

  # Machine-readable output for tooling
  git-stats dris --files main.go --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteDRIs(rootCtx, cfg, gitClient, historyStore); err != nil {
			contract.LogFatal("Cannot run dris analysis", err)
		}
	},
}
