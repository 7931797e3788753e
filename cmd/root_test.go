package cmd

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"automark.dev/pkg/automark/internal/domain"
)

const testConfigWithRules = `
gradebook: gradebook.csv
rules:
  - id: report
    title: Report
    pattern: '\.pdf$'
`

// chdir switches the working directory for the duration of one test. It
// mirrors testing.T.Chdir, which is unavailable before Go 1.24.
func chdir(t *testing.T, dir string) {
	t.Helper()

	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))

	t.Cleanup(func() { require.NoError(t, os.Chdir(orig)) })
}

// useWorkflow swaps the package workflow for the duration of one test.
func useWorkflow(t *testing.T, wf domain.Workflow) {
	t.Helper()

	orig := workflow
	workflow = wf

	t.Cleanup(func() { workflow = orig })
}

// writeConfig places a config file in a fresh working directory and points
// viper at it.
func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	chdir(t, dir)

	path := filepath.Join(dir, configFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())
}

func execute(t *testing.T, args ...string) error {
	t.Helper()

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}
