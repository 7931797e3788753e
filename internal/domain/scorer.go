package domain

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"automark.dev/pkg/automark/internal/adapter"
	m "automark.dev/pkg/automark/internal/model"
	"automark.dev/pkg/automark/pkg/codemerge"
)

const (
	// PassScore is awarded per entry whose test exits 0.
	PassScore = 2

	// FailScore is awarded per entry whose test exits nonzero or times out.
	FailScore = 1

	// TimeoutFeedback is the fixed line recorded when a test times out.
	TimeoutFeedback = "Test failed due to timeout"
)

// Scorer sets score and feedback on every part of an open submission. This is
// the Open -> Scored transition; the caller finalizes afterwards.
type Scorer interface {
	Score(ctx context.Context, sub *m.Submission) error
}

// ScoreConfig describes how matched entries are fed to the external runner.
type ScoreConfig struct {
	Command string
	Args    []string
	Timeout time.Duration

	// MergeBase, when set, is a test harness whose student-code section is
	// replaced by each entry's marker-delimited code before running.
	MergeBase []byte
}

type testScorer struct {
	runner adapter.TestRunnerAdapter
	cfg    ScoreConfig
}

// NewTestScorer constructs a Scorer that pipes each matched entry through the
// external test command and maps the outcome to a score per the grading
// contract: exit 0 scores 2, anything else scores 1, a timeout scores 1 with
// a fixed feedback line.
func NewTestScorer(runner adapter.TestRunnerAdapter, cfg ScoreConfig) Scorer {
	return &testScorer{runner: runner, cfg: cfg}
}

func (s *testScorer) Score(ctx context.Context, sub *m.Submission) error {
	for _, part := range sub.Parts {
		for _, entry := range part.Entries {
			if err := s.scoreEntry(ctx, sub.StudentID, part, entry); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *testScorer) scoreEntry(ctx context.Context, studentID string, part *m.SubmissionPart, entry m.MatchedEntry) error {
	payload := entry.Data
	if len(s.cfg.MergeBase) > 0 {
		payload = []byte(codemerge.Merge(string(s.cfg.MergeBase), string(entry.Data)))
	}

	result, err := s.runner.Run(ctx, adapter.RunSpec{
		Command: s.cfg.Command,
		Args:    s.cfg.Args,
		Stdin:   bytes.NewReader(payload),
		Timeout: s.cfg.Timeout,
	})
	if err != nil {
		return fmt.Errorf("run test for %s/%s: %w", studentID, entry.Name, err)
	}

	if result.TimedOut {
		part.Score += FailScore
		part.Feedback = append(part.Feedback, TimeoutFeedback)

		return nil
	}

	if result.ExitCode == 0 {
		part.Score += PassScore
	} else {
		part.Score += FailScore
	}

	if result.Stdout != "" {
		part.Feedback = append(part.Feedback, result.Stdout)
	}

	if result.ExitCode != 0 && result.Stderr != "" {
		part.Feedback = append(part.Feedback, result.Stderr)
	}

	return nil
}

type nopScorer struct{}

// NewNopScorer constructs a Scorer that leaves parts unscored. Used when no
// test command is configured; submissions finalize with banners only.
func NewNopScorer() Scorer {
	return &nopScorer{}
}

func (*nopScorer) Score(context.Context, *m.Submission) error {
	return nil
}
