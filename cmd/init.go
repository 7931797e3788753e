package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rulesScaffold is appended to the generated config so the rules section can
// be filled in by hand; viper only serializes the flat defaults.
const rulesScaffold = `
# Ordered submission rules. Each rule needs an id, a title (used as the
# feedback banner) and exactly one of:
#   pattern: '<regexp>'            matched against entry base names
#   pattern: ['<re1>', '<re2>']    matched per path segment, counts must agree
#   any: ['<re1>', '<re2>']        any pattern matching the base name suffices
#rules:
#  - id: report
#    title: Report
#    pattern: '\.pdf$'
#  - id: code
#    title: Source Code
#    any: ['\.py$', '\.java$']
`

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Generate a default automark.yaml configuration file",
		Long: `Create an automark.yaml in the current working directory populated with the
current CLI defaults and a commented rules scaffold so it can be edited
manually.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			err := viper.SafeWriteConfigAs(targetPath)
			if err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			file, err := os.OpenFile(targetPath, os.O_APPEND|os.O_WRONLY, 0o600)
			if err != nil {
				return fmt.Errorf("failed to append rules scaffold: %w", err)
			}

			defer func() { _ = file.Close() }()

			if _, err := file.WriteString(rulesScaffold); err != nil {
				return fmt.Errorf("failed to append rules scaffold: %w", err)
			}

			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(initCmd)
}
