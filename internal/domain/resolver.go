// Package domain implements the submission resolution pipeline: locating
// per-student containers in the outer archive, matching their entries against
// the configured SpecRules, scoring, and rolling results up per student.
package domain

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"regexp"
	"strings"

	"automark.dev/pkg/automark/internal/adapter"
	m "automark.dev/pkg/automark/internal/model"
)

// studentNumberPattern extracts the student identifier embedded in outer
// archive entry names.
var studentNumberPattern = regexp.MustCompile(`[0-9]{8,9}`)

// Located describes one per-student container pulled out of the outer archive
// into the scratch directory.
type Located struct {
	StudentID string
	Container string // entry name in the outer archive
	Path      m.Path // scratch path; empty when the extension is unsupported
	Extension string
}

// Resolver turns the outer submissions archive into per-student Submissions.
type Resolver interface {
	// Locate walks the outer ZIP and extracts every recognizable container
	// belonging to a roster student into the scratch directory. Failures
	// here are run-level and fatal; per-student problems are deferred to
	// Build. When a student appears more than once the last entry wins.
	Locate(archive m.Path, roster []string) ([]Located, error)

	// Build opens a located container and collects one SubmissionPart per
	// rule, in rule order, with entries appended in container order. A
	// malformed container is graded as empty: zero parts, score 0. An
	// unsupported extension yields a missing-style submission naming it.
	Build(located Located, rules []*m.SpecRule) (*m.Submission, error)
}

type localResolver struct {
	scratch adapter.ScratchDir
}

// NewResolver constructs the Resolver backed by the given scratch directory.
func NewResolver(scratch adapter.ScratchDir) Resolver {
	return &localResolver{scratch: scratch}
}

func (r *localResolver) Locate(archive m.Path, roster []string) ([]Located, error) {
	rosterSet := make(map[string]struct{}, len(roster))
	for _, id := range roster {
		rosterSet[id] = struct{}{}
	}

	outer, err := zip.OpenReader(string(archive))
	if err != nil {
		return nil, fmt.Errorf("open submissions archive %s: %w", archive, err)
	}

	defer func() { _ = outer.Close() }()

	var located []Located

	byStudent := map[string]int{}

	for _, file := range outer.File {
		if file.FileInfo().IsDir() {
			continue
		}

		name := path.Base(file.Name)

		studentID := studentNumberPattern.FindString(file.Name)
		if studentID == "" {
			slog.Debug("no student number in entry, skipping", "entry", file.Name)
			continue
		}

		if _, ok := rosterSet[studentID]; !ok {
			slog.Debug("student not on roster, skipping", "entry", file.Name, "student", studentID)
			continue
		}

		if strings.HasSuffix(strings.ToLower(name), ".txt") {
			slog.Info("ignoring companion text file", "entry", file.Name)
			continue
		}

		dot := strings.Index(name, ".")
		if dot < 0 {
			slog.Warn("entry has no extension, skipping", "entry", file.Name)
			continue
		}

		ext := name[dot:]

		loc := Located{
			StudentID: studentID,
			Container: name,
			Extension: ext,
		}

		if adapter.RecognizedExtension(name) {
			scratchPath, placeErr := r.place(file, studentID+ext)
			if placeErr != nil {
				return nil, placeErr
			}

			loc.Path = scratchPath
		} else {
			slog.Warn("unknown submission format", "entry", file.Name, "extension", ext)
		}

		if i, seen := byStudent[studentID]; seen {
			located[i] = loc
			continue
		}

		byStudent[studentID] = len(located)
		located = append(located, loc)
	}

	return located, nil
}

func (r *localResolver) place(file *zip.File, name string) (m.Path, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("extract %s: %w", file.Name, err)
	}

	defer func() { _ = src.Close() }()

	return r.scratch.Place(name, src)
}

func (r *localResolver) Build(located Located, rules []*m.SpecRule) (*m.Submission, error) {
	if located.Path == "" {
		sub := m.NewMissingSubmission(located.StudentID,
			fmt.Sprintf("Unknown submission format %s", located.Extension))
		sub.Status = m.StatusUnsupported
		sub.Container = located.Container

		return sub, nil
	}

	sub := m.NewSubmission(located.StudentID)
	sub.Container = located.Container

	container, err := adapter.OpenContainer(located.Path)
	if err != nil {
		if errors.Is(err, adapter.ErrMalformedContainer) {
			slog.Warn("malformed container graded as empty", "student", located.StudentID, "container", located.Container)
			sub.Status = m.StatusCorrupt

			return sub, nil
		}

		return nil, err
	}

	defer func() { _ = container.Close() }()

	parts := make([]*m.SubmissionPart, 0, len(rules))
	for _, rule := range rules {
		parts = append(parts, sub.AddPart(rule))
	}

	walkErr := container.Walk(func(entry adapter.ContainerEntry) error {
		var matched []*m.SubmissionPart

		for i, rule := range rules {
			if rule.Matches(entry.Path) {
				matched = append(matched, parts[i])
			}
		}

		if len(matched) == 0 {
			return nil
		}

		data, readErr := readEntry(entry)
		if readErr != nil {
			return readErr
		}

		base := path.Base(entry.Path)
		for _, part := range matched {
			part.Append(base, data)
		}

		return nil
	})

	if walkErr != nil {
		if adapter.IsMalformed(walkErr) {
			slog.Warn("malformed container graded as empty", "student", located.StudentID, "container", located.Container)
			sub.DiscardParts()
			sub.Status = m.StatusCorrupt

			return sub, nil
		}

		return nil, walkErr
	}

	return sub, nil
}

func readEntry(entry adapter.ContainerEntry) ([]byte, error) {
	rc, err := entry.Open()
	if err != nil {
		return nil, fmt.Errorf("open entry %s: %w", entry.Path, err)
	}

	defer func() { _ = rc.Close() }()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read entry %s: %w", entry.Path, err)
	}

	return data, nil
}
