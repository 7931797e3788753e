package domain

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"automark.dev/pkg/automark/internal/adapter"
	"automark.dev/pkg/automark/internal/controller"
	m "automark.dev/pkg/automark/internal/model"
)

// DefaultNoSubmissionMessage is recorded for roster students with no
// locatable container.
const DefaultNoSubmissionMessage = "No submission"

// GradeArgs contains the arguments for a full grading run.
type GradeArgs struct {
	Submissions         m.Path
	Gradebook           m.Path
	Rules               []*m.SpecRule
	NoSubmissionMessage string
	Reports             m.Path
	Parallel            int
	Scoring             ScoreConfig
}

// ListArgs contains the arguments for a dry resolution run.
type ListArgs struct {
	Submissions m.Path
	Gradebook   m.Path
	Rules       []*m.SpecRule
}

// ViewArgs contains the arguments for viewing a saved run summary.
type ViewArgs struct {
	Reports m.Path
}

// Workflow is the top-level grading pipeline.
type Workflow interface {
	Grade(ctx context.Context, args GradeArgs) error
	List(ctx context.Context, args ListArgs) error
	View(ctx context.Context, args ViewArgs) error
}

type workflow struct {
	adapter.GradebookStore
	adapter.SummaryStore
	scratch adapter.ScratchDir
	ui      controller.UI
	runner  adapter.TestRunnerAdapter
	Resolver
}

// NewWorkflow creates a Workflow instance with the provided dependencies.
func NewWorkflow(
	gradebook adapter.GradebookStore,
	summaries adapter.SummaryStore,
	scratch adapter.ScratchDir,
	ui controller.UI,
	resolver Resolver,
	runner adapter.TestRunnerAdapter,
) Workflow {
	return &workflow{
		GradebookStore: gradebook,
		SummaryStore:   summaries,
		scratch:        scratch,
		ui:             ui,
		runner:         runner,
		Resolver:       resolver,
	}
}

// Grade resolves one Submission per roster student, scores it, merges the
// results into the gradebook and saves the run summary. Per-student problems
// (missing, corrupt, unsupported containers) never fail the run; table-level
// problems do, before anything is written.
func (w *workflow) Grade(ctx context.Context, args GradeArgs) error {
	scorer := NewNopScorer()
	if args.Scoring.Command != "" {
		scorer = NewTestScorer(w.runner, args.Scoring)
	}

	resolved, roster, err := w.resolve(ctx, args.Submissions, args.Gradebook, args.Rules, args.Parallel, scorer)
	if err != nil {
		return err
	}

	message := args.NoSubmissionMessage
	if message == "" {
		message = DefaultNoSubmissionMessage
	}

	fillMissing(resolved, roster, message)

	if err := w.WriteBack(args.Gradebook, resolved); err != nil {
		return fmt.Errorf("write back gradebook: %w", err)
	}

	summaries := summarize(resolved, roster)

	if args.Reports != "" {
		if err := w.Save(args.Reports, summaries); err != nil {
			return fmt.Errorf("save run summary: %w", err)
		}
	}

	return w.ui.DisplaySummary(summaries)
}

// List resolves submissions without scoring or write-back and shows which
// entries each rule matched.
func (w *workflow) List(ctx context.Context, args ListArgs) error {
	resolved, roster, err := w.resolve(ctx, args.Submissions, args.Gradebook, args.Rules, 1, NewNopScorer())
	if err != nil {
		return err
	}

	fillMissing(resolved, roster, DefaultNoSubmissionMessage)

	subs := make([]*m.Submission, 0, len(roster))
	for _, id := range rosterOrder(roster) {
		subs = append(subs, resolved[id])
	}

	return w.ui.DisplayMatches(subs)
}

// View renders the summary of a previous run.
func (w *workflow) View(_ context.Context, args ViewArgs) error {
	summaries, err := w.Load(args.Reports)
	if err != nil {
		return err
	}

	return w.ui.DisplaySummary(summaries)
}

// resolve runs the per-student pipeline: locate containers, then build (and
// optionally score and finalize) each student's submission. The fan-out is
// bounded by parallel; every submission is independent, and the gradebook
// write-back stays single-writer after the group joins.
func (w *workflow) resolve(
	ctx context.Context,
	submissions m.Path,
	gradebook m.Path,
	rules []*m.SpecRule,
	parallel int,
	scorer Scorer,
) (map[string]*m.Submission, []string, error) {
	roster, err := w.LoadRoster(gradebook)
	if err != nil {
		return nil, nil, fmt.Errorf("load roster: %w", err)
	}

	slog.Info("roster loaded", "students", len(roster))

	if err := w.scratch.Init(); err != nil {
		return nil, nil, err
	}

	located, err := w.Locate(submissions, roster)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("containers located", "count", len(located))

	resolved := make(map[string]*m.Submission, len(roster))

	var mu sync.Mutex

	group, groupCtx := errgroup.WithContext(ctx)
	if parallel < 1 {
		parallel = 1
	}

	group.SetLimit(parallel)

	for _, loc := range located {
		loc := loc

		group.Go(func() error {
			sub, buildErr := w.Build(loc, rules)
			if buildErr != nil {
				return buildErr
			}

			defer sub.Finalize()

			if !sub.Finalized() {
				if scoreErr := scorer.Score(groupCtx, sub); scoreErr != nil {
					return scoreErr
				}
			}

			mu.Lock()
			resolved[sub.StudentID] = sub
			mu.Unlock()

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, nil, err
	}

	return resolved, roster, nil
}

// fillMissing gives every unresolved roster student a missing submission.
func fillMissing(resolved map[string]*m.Submission, roster []string, message string) {
	for _, id := range roster {
		if _, ok := resolved[id]; !ok {
			resolved[id] = m.NewMissingSubmission(id, message)
		}
	}
}

func summarize(resolved map[string]*m.Submission, roster []string) []m.RunSummary {
	order := rosterOrder(roster)
	summaries := make([]m.RunSummary, 0, len(order))

	for _, id := range order {
		summaries = append(summaries, m.NewRunSummary(resolved[id]))
	}

	return summaries
}

// rosterOrder preserves roster row order while dropping duplicate ids.
func rosterOrder(roster []string) []string {
	seen := make(map[string]struct{}, len(roster))
	order := make([]string, 0, len(roster))

	for _, id := range roster {
		if _, ok := seen[id]; ok {
			continue
		}

		seen[id] = struct{}{}
		order = append(order, id)
	}

	return order
}
