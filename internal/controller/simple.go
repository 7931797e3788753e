package controller

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "automark.dev/pkg/automark/internal/model"
)

// SimpleUI implements UI using cobra Command's output stream.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayMatches prints every student's matched entries grouped by rule.
func (s *SimpleUI) DisplayMatches(subs []*m.Submission) error {
	for _, sub := range subs {
		if err := s.printf("%s (%s)\n", sub.StudentID, sub.Status); err != nil {
			return err
		}

		for _, part := range sub.Parts {
			if err := s.printf("  %s (%s): %d file(s)\n", part.Rule.Title, part.Rule.Identifier, len(part.Entries)); err != nil {
				return err
			}

			for _, entry := range part.Entries {
				if err := s.printf("    - %s\n", entry.Name); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// DisplaySummary renders the run summary as a table with score totals.
func (s *SimpleUI) DisplaySummary(rows []m.RunSummary) error {
	return s.printf("\n%s", renderSummaryTable(rows))
}

func renderSummaryTable(rows []m.RunSummary) string {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Student ID", "Status", "Container", "Matched", "Score"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
	})

	totalScore := 0
	graded := 0

	for _, row := range rows {
		table.Append([]string{
			row.StudentID,
			row.Status,
			row.Container,
			strconv.Itoa(row.Matched),
			strconv.Itoa(row.Score),
		})

		totalScore += row.Score

		if row.Status == string(m.StatusGraded) {
			graded++
		}
	}

	table.SetFooter([]string{
		fmt.Sprintf("Students %d", len(rows)),
		fmt.Sprintf("Graded %d", graded),
		"",
		"",
		strconv.Itoa(totalScore),
	})

	table.Render()

	return tableBuffer.String()
}

// printf writes formatted output to the underlying cobra command's stdout.
func (s *SimpleUI) printf(format string, args ...interface{}) error {
	_, err := fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
	return err
}
