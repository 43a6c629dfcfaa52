package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metaneutrons/logtidy/internal/domain"
	m "github.com/metaneutrons/logtidy/internal/model"
)

var analyzeDryRunFlag bool
var analyzeInteractiveFlag bool

// analyzeCmd represents the analyze command.
var analyzeCmd = newAnalyzeCmd()

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [project-root]",
		Short: "Flag deprecated, unused and temporary files",
		Long: `Analyze the codebase for cleanup opportunities: files superseded by newer
implementations, definitions nothing references, and leftover scratch files.
Writes a markdown report, and unless --dry-run also a cleanup script that
removes the safe findings and runs the target build to verify the tree.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Analyze(context.Background(), domain.AnalyzeArgs{
				Root:         projectRoot(args),
				Extensions:   extensions(),
				DryRun:       analyzeDryRunFlag,
				Interactive:  analyzeInteractiveFlag,
				ReportFile:   m.Path(viper.GetString(cleanupReportConfigKey)),
				ScriptFile:   m.Path(viper.GetString(cleanupScriptConfigKey)),
				BuildCommand: viper.GetString(buildCommandConfigKey),
			})
		},
	}

	cmd.Flags().BoolVarP(&analyzeDryRunFlag, dryRunFlagName, "n", false, "generate the report only, no cleanup script")
	cmd.Flags().BoolVarP(&analyzeInteractiveFlag, interactiveFlagName, "i", false, "offer to run the cleanup script")

	return cmd
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}
