package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/metaneutrons/logtidy/internal/domain"
	m "github.com/metaneutrons/logtidy/internal/model"
)

var patchRulesFlag string

// patchCmd represents the patch command.
var patchCmd = newPatchCmd()

func newPatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patch <file> [file...]",
		Short: "Apply regex replacement rules to files",
		Long: `Apply an ordered list of regex replacement rules from a YAML file to the
given files. Rules run in declaration order and later rules see the output
of earlier ones. Files whose content does not change are left untouched.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			files := make([]m.Path, 0, len(args))
			for _, arg := range args {
				files = append(files, m.Path(arg))
			}

			return workflow.Patch(context.Background(), domain.PatchArgs{
				Rules: m.Path(patchRulesFlag),
				Files: files,
			})
		},
	}

	cmd.Flags().StringVarP(&patchRulesFlag, "rules", "r", "patch-rules.yaml", "YAML file with replacement rules")

	return cmd
}

func init() {
	rootCmd.AddCommand(patchCmd)
}
