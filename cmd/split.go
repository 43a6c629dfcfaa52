package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/metaneutrons/logtidy/internal/domain"
	m "github.com/metaneutrons/logtidy/internal/model"
)

var splitOutputDirFlag string
var splitTitleFlag string

// splitCmd represents the split command.
var splitCmd = newSplitCmd()

func newSplitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split <document>",
		Short: "Split a numbered markdown document into chapter files",
		Long: `Split a monolithic markdown document on its numbered top-level headings
("# 12 Some Chapter") into one file per chapter plus an index, so large
generated documentation can live as browsable pages.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return workflow.Split(context.Background(), domain.SplitArgs{
				Source:    m.Path(args[0]),
				OutputDir: m.Path(splitOutputDirFlag),
				Title:     splitTitleFlag,
			})
		},
	}

	cmd.Flags().StringVarP(&splitOutputDirFlag, "output-dir", "d", "docs", "directory for the chapter files")
	cmd.Flags().StringVarP(&splitTitleFlag, "title", "t", "Documentation", "title of the generated index")

	return cmd
}

func init() {
	rootCmd.AddCommand(splitCmd)
}
