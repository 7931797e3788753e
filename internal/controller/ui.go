// Package controller provides output adapters for displaying grading results.
package controller

import (
	m "automark.dev/pkg/automark/internal/model"
)

// UI defines the interface for displaying resolution and grading results.
type UI interface {
	// DisplayMatches shows, per student and rule, which container entries
	// were matched (the `list` dry run).
	DisplayMatches(subs []*m.Submission) error

	// DisplaySummary renders the per-student run summary table.
	DisplaySummary(rows []m.RunSummary) error
}
