package adapter

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	m "automark.dev/pkg/automark/internal/model"
)

const (
	// StudentIDHeader is the mandatory roster identifier column.
	StudentIDHeader = "Student ID"

	// ScoreHeaderMarker identifies the score column by substring match.
	ScoreHeaderMarker = "Total Pts:"

	// FeedbackInputHeader is the legacy feedback column header on input.
	FeedbackInputHeader = "Feedback to Learner"

	// FeedbackOutputHeader is the canonical feedback column header on output.
	FeedbackOutputHeader = "Feedback to User"
)

// GradebookStore reads the roster from the gradebook table and merges
// finalized submissions back into it. Table-level failures (bad schema,
// unreadable encoding) are fatal; there is no partial write-back.
type GradebookStore interface {
	LoadRoster(path m.Path) ([]string, error)
	WriteBack(path m.Path, resolved map[string]*m.Submission) error
}

// LocalGradebookStore is the CSV-file implementation. The table is UTF-8 with
// an optional byte-order mark, which is preserved on output.
type LocalGradebookStore struct{}

// NewLocalGradebookStore constructs a LocalGradebookStore.
func NewLocalGradebookStore() *LocalGradebookStore {
	return &LocalGradebookStore{}
}

// LoadRoster returns the student identifier of every row, in row order.
func (s *LocalGradebookStore) LoadRoster(path m.Path) ([]string, error) {
	header, rows, err := readTable(path)
	if err != nil {
		return nil, err
	}

	idIndex := indexOf(header, StudentIDHeader)
	if idIndex < 0 {
		return nil, fmt.Errorf("gradebook %s: missing %q column", path, StudentIDHeader)
	}

	roster := make([]string, 0, len(rows))

	for _, row := range rows {
		if idIndex < len(row) {
			roster = append(roster, row[idIndex])
		}
	}

	return roster, nil
}

// WriteBack re-reads the table to recover its exact column order, rewrites the
// score and feedback columns from the resolved submissions, and re-emits the
// whole table. Rows for students absent from the resolved map get score 0 and
// an untouched feedback value. All other columns and the row order are
// preserved verbatim.
func (s *LocalGradebookStore) WriteBack(path m.Path, resolved map[string]*m.Submission) error {
	header, rows, err := readTable(path)
	if err != nil {
		return err
	}

	for i, name := range header {
		if name == FeedbackInputHeader {
			header[i] = FeedbackOutputHeader
		}
	}

	idIndex := indexOf(header, StudentIDHeader)
	if idIndex < 0 {
		return fmt.Errorf("gradebook %s: missing %q column", path, StudentIDHeader)
	}

	scoreIndex := -1

	for i, name := range header {
		if strings.Contains(name, ScoreHeaderMarker) {
			scoreIndex = i
		}
	}

	if scoreIndex < 0 {
		return fmt.Errorf("gradebook %s: no column header contains %q", path, ScoreHeaderMarker)
	}

	feedbackIndex := indexOf(header, FeedbackOutputHeader)
	if feedbackIndex < 0 {
		return fmt.Errorf("gradebook %s: missing %q column", path, FeedbackOutputHeader)
	}

	for _, row := range rows {
		if idIndex >= len(row) {
			continue
		}

		sub, ok := resolved[row[idIndex]]
		if !ok {
			row[scoreIndex] = "0"
			continue
		}

		row[scoreIndex] = strconv.Itoa(sub.Score())
		row[feedbackIndex] = strings.Join(sub.Feedback(), "\n")
	}

	return writeTable(path, header, rows)
}

func readTable(path m.Path) (header []string, rows [][]string, err error) {
	file, err := os.Open(string(path))
	if err != nil {
		return nil, nil, fmt.Errorf("open gradebook: %w", err)
	}

	defer func() { _ = file.Close() }()

	reader := csv.NewReader(transform.NewReader(file, unicode.UTF8BOM.NewDecoder()))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("parse gradebook %s: %w", path, err)
	}

	if len(records) == 0 {
		return nil, nil, fmt.Errorf("gradebook %s: empty table", path)
	}

	return records[0], records[1:], nil
}

// writeTable re-emits the full table via a temp file and rename, so a failed
// write never leaves a half-merged gradebook behind.
func writeTable(path m.Path, header []string, rows [][]string) error {
	tmpPath := string(path) + ".tmp"

	file, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("write gradebook: %w", err)
	}

	writer := csv.NewWriter(transform.NewWriter(file, unicode.UTF8BOM.NewEncoder()))

	writeErr := writer.Write(header)

	for _, row := range rows {
		if writeErr != nil {
			break
		}

		writeErr = writer.Write(row)
	}

	if writeErr == nil {
		writer.Flush()
		writeErr = writer.Error()
	}

	if closeErr := file.Close(); writeErr == nil {
		writeErr = closeErr
	}

	if writeErr != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write gradebook %s: %w", path, writeErr)
	}

	return os.Rename(tmpPath, string(path))
}

func indexOf(header []string, name string) int {
	for i, field := range header {
		if field == name {
			return i
		}
	}

	return -1
}
