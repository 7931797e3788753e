package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"automark.dev/pkg/automark/internal/domain"
	m "automark.dev/pkg/automark/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view",
		Short: "View the summary of a previous grading run",
		Long:  "View the per-student summary saved by a previous 'automark grade' run.",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			reportsPath := m.Path(viper.GetString(outputFlagName))
			return workflow.View(cmd.Context(), domain.ViewArgs{Reports: reportsPath})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
