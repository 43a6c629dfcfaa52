package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metaneutrons/logtidy/internal/domain"
	m "github.com/metaneutrons/logtidy/internal/model"
)

var renumberDryRunFlag bool
var renumberYesFlag bool
var renumberBuildFlag bool
var renumberMappingFlag string

// renumberCmd represents the renumber command.
var renumberCmd = newRenumberCmd()

func newRenumberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renumber [project-root]",
		Short: "Reassign EventIds into per-category ranges",
		Long: `Scan the project for LoggerMessage annotations, classify each file into a
category, assign every file a disjoint numeric sub-range within its
category's reserved block, and rewrite the EventIds in place.

The run aborts before any write when a file holds more distinct EventIds
than the per-file block size. After rewriting, a full re-scan confirms that
no EventId value occurs more than once; collisions make the command exit
with status 2.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Renumber(context.Background(), domain.RenumberArgs{
				EstimateArgs: domain.EstimateArgs{
					Root:       projectRoot(args),
					Scheme:     m.Path(viper.GetString(schemeFlagName)),
					Extensions: extensions(),
				},
				DryRun:       renumberDryRunFlag,
				Yes:          renumberYesFlag,
				Mapping:      m.Path(viper.GetString(mappingFlagName)),
				Build:        renumberBuildFlag,
				BuildCommand: viper.GetString(buildCommandConfigKey),
			})
		},
	}

	configureRenumberFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(renumberCmd)
}

func configureRenumberFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&renumberDryRunFlag, dryRunFlagName, "n", false, "show the plan and diffs without writing")
	cmd.Flags().BoolVarP(&renumberYesFlag, yesFlagName, "y", false, "apply without asking for confirmation")
	cmd.Flags().BoolVar(&renumberBuildFlag, buildFlagName, false, "run the target build command after rewriting")
	cmd.Flags().StringVarP(&renumberMappingFlag, mappingFlagName, "m", viper.GetString(mappingFlagName), "mapping report output file")
	bindFlagToConfig(cmd.Flags().Lookup(mappingFlagName), mappingFlagName)
}
