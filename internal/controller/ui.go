// Package controller provides user interaction and result display for the
// logtidy CLI.
package controller

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// UI defines the interface for prompting the user and displaying results.
// Implementations can use different output methods (simple text, pager, etc).
type UI interface {
	// Confirm asks a yes/no question before a destructive step. Declining is
	// a clean outcome, not an error.
	Confirm(ctx context.Context, prompt string) (bool, error)
	// DisplayEstimation shows the per-file annotation inventory.
	DisplayEstimation(ctx context.Context, plan m.Plan) error
	// DisplayPlan shows the planned renumbering before it is applied.
	DisplayPlan(ctx context.Context, plan m.Plan) error
	// DisplayDiff shows a unified diff for one file in a dry run.
	DisplayDiff(ctx context.Context, path m.Path, diff string) error
	// DisplayVerification shows the uniqueness check outcome.
	DisplayVerification(ctx context.Context, verification m.Verification) error
	// DisplayCleanupReport shows cleanup-analysis findings.
	DisplayCleanupReport(ctx context.Context, report m.CleanupReport) error
	// DisplayPatchResults shows per-file patch outcomes.
	DisplayPatchResults(ctx context.Context, results []m.PatchResult) error
	// Printf writes a plain formatted line.
	Printf(format string, args ...any)
}

// IsTTY reports whether f is attached to a terminal.
func IsTTY(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewUI constructs the console UI. When tty is true, plans too long for the
// screen page through an interactive viewer.
func NewUI(cmd *cobra.Command, tty bool) UI {
	return &ConsoleUI{cmd: cmd, tty: tty}
}
