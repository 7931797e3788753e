// Package cmd provides the root command and CLI setup for automark.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"automark.dev/pkg/automark/internal/adapter"
	"automark.dev/pkg/automark/internal/controller"
	"automark.dev/pkg/automark/internal/domain"
	m "automark.dev/pkg/automark/internal/model"
)

var gradebookStore adapter.GradebookStore
var summaryStore adapter.SummaryStore
var testRunner adapter.TestRunnerAdapter
var ui controller.UI
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read/write
// run summaries.
var reportsOutputDirFlag string

// gradebookFlag points at the gradebook CSV.
var gradebookFlag string

const rootLongDescription = `Automark extracts per-student submission files from a batch of LMS archives,
matches the files of interest with configurable rules, scores them through an
external test runner, and merges score and feedback back into the gradebook
table without touching its other columns.

Rules live under the 'rules' key of automark.yaml; run 'automark init' for a
starter configuration.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "automark",
		Short: "Batch submission grading tool",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}

	configureRootFlags(cmd)

	return cmd
}

func init() {
	// Initialize shared dependencies.
	ui = controller.NewSimpleUI(rootCmd)
	gradebookStore = adapter.NewLocalGradebookStore()
	summaryStore = adapter.NewLocalSummaryStore()
	testRunner = adapter.NewLocalTestRunnerAdapter()

	scratch := adapter.NewLocalScratchDir(m.Path(viper.GetString(scratchConfigKey)))
	resolver := domain.NewResolver(scratch)

	workflow = domain.NewWorkflow(
		gradebookStore,
		summaryStore,
		scratch,
		ui,
		resolver,
		testRunner,
	)
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run summaries",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().
		StringVarP(
			&gradebookFlag, gradebookFlagName, "g",
			viper.GetString(gradebookFlagName),
			"path to the gradebook CSV",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(gradebookFlagName), gradebookFlagName)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// loadRules reads the ordered rule definitions from the config file. A
// missing or malformed rule set is fatal: without rules nothing can be
// matched, and a silently empty run would zero the whole gradebook.
func loadRules() ([]*m.SpecRule, error) {
	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		return nil, fmt.Errorf("no %s found; run 'automark init' first", configFileName)
	}

	return adapter.LoadRules(m.Path(configPath))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
