package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/metaneutrons/logtidy/internal/domain"
	m "github.com/metaneutrons/logtidy/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list [project-root]",
		Short: "List annotated files, their categories and planned bases",
		Long:  "List every file carrying LoggerMessage annotations with its category, file index, EventId count and planned base. Read-only.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Estimate(context.Background(), domain.EstimateArgs{
				Root:       projectRoot(args),
				Scheme:     m.Path(viper.GetString(schemeFlagName)),
				Extensions: extensions(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(listCmd)
}
