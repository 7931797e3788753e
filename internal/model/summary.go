package model

// RunSummary is one row of the per-run summary CSV: how a roster student's
// submission resolved and what it scored.
type RunSummary struct {
	StudentID string `csv:"Student ID"`
	Status    string `csv:"Status"`
	Container string `csv:"Container"`
	Matched   int    `csv:"Matched Files"`
	Score     int    `csv:"Score"`
}

// NewRunSummary builds the summary row for a finalized submission.
func NewRunSummary(sub *Submission) RunSummary {
	return RunSummary{
		StudentID: sub.StudentID,
		Status:    string(sub.Status),
		Container: sub.Container,
		Matched:   sub.MatchedCount(),
		Score:     sub.Score(),
	}
}
