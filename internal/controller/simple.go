package controller

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// ConsoleUI implements UI on top of a cobra Command's input and output
// streams.
type ConsoleUI struct {
	cmd *cobra.Command
	tty bool
}

// Confirm prints the prompt and reads a yes/no answer from stdin. Anything
// other than y/yes declines.
func (u *ConsoleUI) Confirm(ctx context.Context, prompt string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	u.printf("\n%s (y/N): ", prompt)

	reader := bufio.NewReader(u.cmd.InOrStdin())

	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return false, nil
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes", nil
}

// DisplayEstimation renders the annotation inventory table.
func (u *ConsoleUI) DisplayEstimation(ctx context.Context, plan m.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Category", "Index", "EventIds", "New Base"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
	})

	totalIDs := 0

	for _, file := range plan.Files {
		table.Append([]string{
			string(file.Record.Path),
			string(file.Record.Category),
			fmt.Sprintf("%d", file.Record.FileIndex),
			fmt.Sprintf("%d", len(file.Record.Values)),
			fmt.Sprintf("%d", file.NewBase),
		})

		totalIDs += len(file.Record.Values)
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(plan.Files)), "", "",
		fmt.Sprintf("%d", totalIDs), "",
	})

	table.Render()

	u.printf("\n%s", buf.String())

	return nil
}

// DisplayPlan renders the set of files whose identifiers would change. On a
// terminal, long plans page through an interactive viewer.
func (u *ConsoleUI) DisplayPlan(ctx context.Context, plan m.Plan) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	changed := plan.ChangedFiles()
	if len(changed) == 0 {
		u.printf("No EventId changes needed - already organized!\n")
		return nil
	}

	rows := make([]planRow, 0, len(changed))

	for _, file := range changed {
		changes := 0

		for old, nw := range file.Assignment {
			if old != nw {
				changes++
			}
		}

		rows = append(rows, planRow{
			path:     string(file.Record.Path),
			category: string(file.Record.Category),
			changes:  changes,
		})
	}

	if u.tty {
		return runPlanPager(u.cmd.OutOrStdout(), rows, plan.ChangeCount())
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Path", "Category", "Changes"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER})

	for _, row := range rows {
		table.Append([]string{row.path, row.category, fmt.Sprintf("%d", row.changes)})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(rows)), "",
		fmt.Sprintf("%d", plan.ChangeCount()),
	})

	table.Render()

	u.printf("\n%s", buf.String())

	return nil
}

// DisplayDiff prints a unified diff for one file.
func (u *ConsoleUI) DisplayDiff(ctx context.Context, path m.Path, diff string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	u.printf("\n--- %s ---\n%s", path, diff)

	return nil
}

// DisplayVerification prints the uniqueness check outcome.
func (u *ConsoleUI) DisplayVerification(ctx context.Context, verification m.Verification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if verification.OK() {
		u.printf("All %d EventIds are unique!\n", verification.Distinct)
		return nil
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"EventId", "Occurrences", "Files"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, value := range verification.CollidingValues() {
		paths := verification.Collisions[value]
		table.Append([]string{
			fmt.Sprintf("%d", value),
			fmt.Sprintf("%d", len(paths)),
			joinPaths(paths),
		})
	}

	table.Render()

	u.printf("\nFound %d duplicated EventId value(s) across %d distinct ids:\n\n%s",
		len(verification.Collisions), verification.Distinct, buf.String())

	return nil
}

// DisplayCleanupReport prints the cleanup findings summary.
func (u *ConsoleUI) DisplayCleanupReport(ctx context.Context, report m.CleanupReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer

	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"Bucket", "Count"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	table.Append([]string{"Deprecated (safe to remove)", fmt.Sprintf("%d", len(report.Deprecated))})
	table.Append([]string{"Potentially unused (review)", fmt.Sprintf("%d", len(report.Unused))})
	table.Append([]string{"Temporary (safe to remove)", fmt.Sprintf("%d", len(report.Temporary))})
	table.SetFooter([]string{"Files analyzed", fmt.Sprintf("%d", report.Analyzed)})

	table.Render()

	u.printf("\n%s", buf.String())

	return nil
}

// DisplayPatchResults prints per-file patch outcomes.
func (u *ConsoleUI) DisplayPatchResults(ctx context.Context, results []m.PatchResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	for _, result := range results {
		if result.Modified {
			u.printf("%s: %d replacement(s)\n", result.File, result.Replacements)
		} else {
			u.printf("%s: unchanged\n", result.File)
		}
	}

	return nil
}

// Printf writes a plain formatted line to the command output.
func (u *ConsoleUI) Printf(format string, args ...any) {
	u.printf(format, args...)
}

func (u *ConsoleUI) printf(format string, args ...any) {
	fmt.Fprintf(u.cmd.OutOrStdout(), format, args...)
}

func joinPaths(paths []m.Path) string {
	seen := make(map[m.Path]struct{}, len(paths))
	parts := make([]string, 0, len(paths))

	for _, path := range paths {
		if _, dup := seen[path]; dup {
			continue
		}

		seen[path] = struct{}{}
		parts = append(parts, string(path))
	}

	return strings.Join(parts, ", ")
}
