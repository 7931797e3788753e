package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"automark.dev/pkg/automark/internal/domain"
	m "automark.dev/pkg/automark/internal/model"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <submissions.zip>",
		Short: "List matched files per student without grading",
		Long: `List resolves each roster student's submission and shows which container
entries every rule matched. Nothing is scored and the gradebook is untouched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}

			return workflow.List(cmd.Context(), domain.ListArgs{
				Submissions: m.Path(args[0]),
				Gradebook:   m.Path(viper.GetString(gradebookFlagName)),
				Rules:       rules,
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(listCmd)
}
