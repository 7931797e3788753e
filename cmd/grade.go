package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"automark.dev/pkg/automark/internal/domain"
	m "automark.dev/pkg/automark/internal/model"
)

var gradeParallelFlag int

// gradeCmd represents the grade command.
var gradeCmd = newGradeCmd()

func newGradeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "grade <submissions.zip>",
		Short: "Grade a batch of submissions and update the gradebook",
		Long: `Grade resolves one submission per roster student from the outer archive,
runs the configured test command on every matched file, and writes the
aggregated score and feedback back into the gradebook CSV.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}

			scoring, err := scoreConfig()
			if err != nil {
				return err
			}

			return workflow.Grade(cmd.Context(), domain.GradeArgs{
				Submissions:         m.Path(args[0]),
				Gradebook:           m.Path(viper.GetString(gradebookFlagName)),
				Rules:               rules,
				NoSubmissionMessage: viper.GetString(noSubmissionMessageKey),
				Reports:             m.Path(viper.GetString(outputFlagName)),
				Parallel:            viper.GetInt(gradeParallelConfigKey),
				Scoring:             scoring,
			})
		},
	}

	configureGradeFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(gradeCmd)
}

func configureGradeFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&gradeParallelFlag, parallelFlagName, "p",
		viper.GetInt(gradeParallelConfigKey),
		"number of parallel workers for per-student resolution and scoring")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), gradeParallelConfigKey)
}

// scoreConfig assembles the external-runner configuration. An empty command
// disables scoring; matched parts then finalize with banners only.
func scoreConfig() (domain.ScoreConfig, error) {
	cfg := domain.ScoreConfig{
		Command: viper.GetString(testCommandConfigKey),
		Args:    viper.GetStringSlice(testArgsConfigKey),
		Timeout: testTimeout(),
	}

	basePath := viper.GetString(testMergeBaseConfigKey)
	if basePath != "" {
		base, err := os.ReadFile(basePath)
		if err != nil {
			return domain.ScoreConfig{}, fmt.Errorf("read merge base: %w", err)
		}

		cfg.MergeBase = base
	}

	return cfg, nil
}
