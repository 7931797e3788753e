package adapter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	m "automark.dev/pkg/automark/internal/model"
)

// summaryFileName is the run summary file inside the reports directory.
const summaryFileName = "summary.csv"

// SummaryStore persists the per-run grading summary.
type SummaryStore interface {
	Save(dir m.Path, rows []m.RunSummary) error
	Load(dir m.Path) ([]m.RunSummary, error)
}

// LocalSummaryStore writes the summary as a CSV file in the reports directory.
type LocalSummaryStore struct{}

// NewLocalSummaryStore constructs a LocalSummaryStore.
func NewLocalSummaryStore() *LocalSummaryStore {
	return &LocalSummaryStore{}
}

// Save writes the summary rows, creating the reports directory if needed.
func (s *LocalSummaryStore) Save(dir m.Path, rows []m.RunSummary) error {
	if err := os.MkdirAll(string(dir), 0o750); err != nil {
		return fmt.Errorf("create reports dir %s: %w", dir, err)
	}

	target := filepath.Join(string(dir), summaryFileName)

	file, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("create summary %s: %w", target, err)
	}

	defer func() { _ = file.Close() }()

	if err := gocsv.MarshalFile(&rows, file); err != nil {
		return fmt.Errorf("write summary %s: %w", target, err)
	}

	return nil
}

// Load reads back the summary rows of a previous run.
func (s *LocalSummaryStore) Load(dir m.Path) ([]m.RunSummary, error) {
	target := filepath.Join(string(dir), summaryFileName)

	file, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("open summary %s: %w", target, err)
	}

	defer func() { _ = file.Close() }()

	var rows []m.RunSummary
	if err := gocsv.UnmarshalFile(file, &rows); err != nil {
		return nil, fmt.Errorf("read summary %s: %w", target, err)
	}

	return rows, nil
}
