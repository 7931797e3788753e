package model

import (
	"strings"
	"unicode/utf8"
)

// BannerMarker is the character repeated to frame part titles in feedback.
const BannerMarker = "#"

// MatchedEntry is one container entry collected by a rule. Name is the entry
// base name; Data holds the entry contents, copied out of the container while
// it was open.
type MatchedEntry struct {
	Name string
	Data []byte
}

// SubmissionPart accumulates the entries matched by one SpecRule for one
// student. Score and Feedback are set by the scorer between resolution and
// finalization; a part with no entries still aggregates and still produces a
// title banner so reviewers can see that nothing was found.
type SubmissionPart struct {
	Rule     *SpecRule
	Entries  []MatchedEntry
	Score    int
	Feedback []string
}

// Append records an entry matched by this part's rule, in container order.
func (p *SubmissionPart) Append(name string, data []byte) {
	p.Entries = append(p.Entries, MatchedEntry{Name: name, Data: data})
}

// banner frames the part's feedback with its rule title between marker lines.
func (p *SubmissionPart) banner() []string {
	line := strings.Repeat(BannerMarker, utf8.RuneCountInString(p.Rule.Title))

	return []string{line, p.Rule.Title, line}
}

// SubmissionStatus classifies how a roster student's submission resolved.
type SubmissionStatus string

const (
	// StatusGraded means a container was found, opened and matched.
	StatusGraded SubmissionStatus = "graded"
	// StatusMissing means no container was located for the student.
	StatusMissing SubmissionStatus = "missing"
	// StatusCorrupt means the container was malformed; graded as empty.
	StatusCorrupt SubmissionStatus = "corrupt"
	// StatusUnsupported means the container had an unrecognized extension.
	StatusUnsupported SubmissionStatus = "unsupported"
)

// Submission is one student's graded unit: the ordered parts collected from
// their container, rolled up into a total score and feedback on Finalize.
type Submission struct {
	StudentID string
	Status    SubmissionStatus
	Container string
	Parts     []*SubmissionPart

	score     int
	feedback  []string
	finalized bool
}

// NewSubmission creates an open submission backed by a located container.
func NewSubmission(studentID string) *Submission {
	return &Submission{StudentID: studentID, Status: StatusGraded}
}

// NewMissingSubmission creates a pre-finalized submission with score 0 and a
// single explanatory feedback line. It skips the whole open/scored cycle.
func NewMissingSubmission(studentID, message string) *Submission {
	return &Submission{
		StudentID: studentID,
		Status:    StatusMissing,
		feedback:  []string{message},
		finalized: true,
	}
}

// AddPart creates the part for one rule and appends it in rule order.
func (s *Submission) AddPart(rule *SpecRule) *SubmissionPart {
	part := &SubmissionPart{Rule: rule}
	s.Parts = append(s.Parts, part)

	return part
}

// DiscardParts drops every collected part, leaving an empty submission. Used
// when a container turns out to be malformed partway through enumeration.
func (s *Submission) DiscardParts() {
	s.Parts = nil
}

// Finalize computes the aggregate score and feedback from the parts: the score
// is the sum of part scores, the feedback is each part's banner followed by
// its feedback lines, in rule order. Finalize is idempotent and runs on every
// exit path of the per-student scope.
func (s *Submission) Finalize() {
	if s.finalized {
		return
	}

	s.finalized = true
	s.score = 0
	s.feedback = nil

	for _, part := range s.Parts {
		s.score += part.Score
		s.feedback = append(s.feedback, part.banner()...)
		s.feedback = append(s.feedback, part.Feedback...)
	}
}

// Finalized reports whether the aggregate has been computed.
func (s *Submission) Finalized() bool {
	return s.finalized
}

// Score returns the finalized total score.
func (s *Submission) Score() int {
	return s.score
}

// Feedback returns the finalized feedback lines.
func (s *Submission) Feedback() []string {
	return s.feedback
}

// MatchedCount returns the number of entries collected across all parts.
func (s *Submission) MatchedCount() int {
	count := 0
	for _, part := range s.Parts {
		count += len(part.Entries)
	}

	return count
}
