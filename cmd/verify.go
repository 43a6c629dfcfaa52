package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/metaneutrons/logtidy/internal/domain"
)

// verifyCmd represents the verify command.
var verifyCmd = newVerifyCmd()

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify [project-root]",
		Short: "Check that no EventId value occurs more than once",
		Long: `Re-extract every EventId from disk and report any value that occurs more
than once across the tree. Exits with status 2 when collisions are found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Verify(context.Background(), domain.VerifyArgs{
				Root:       projectRoot(args),
				Extensions: extensions(),
			})
		},
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
