package model

import (
	"strings"
	"testing"
)

func mustRule(t *testing.T, id, title, pattern string) *SpecRule {
	t.Helper()

	rule, err := NewSpecRule(id, title, pattern)
	if err != nil {
		t.Fatalf("NewSpecRule(%q) error = %v", id, err)
	}

	return rule
}

func TestSubmission_Finalize_AggregatesScoreAndBanners(t *testing.T) {
	sub := NewSubmission("123456789")

	report := sub.AddPart(mustRule(t, "pdf", "Report", `\.pdf$`))
	report.Append("report.pdf", []byte("%PDF"))
	report.Score = 5
	report.Feedback = []string{"Good work"}

	sub.Finalize()

	if sub.Score() != 5 {
		t.Errorf("Score() = %d, want 5", sub.Score())
	}

	banner := strings.Repeat(BannerMarker, len("Report"))
	want := []string{banner, "Report", banner, "Good work"}

	got := sub.Feedback()
	if len(got) != len(want) {
		t.Fatalf("Feedback() = %q, want %q", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Feedback()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSubmission_Finalize_EmptyPartStillBanners(t *testing.T) {
	sub := NewSubmission("123456789")
	sub.AddPart(mustRule(t, "pdf", "Report", `\.pdf$`))

	sub.Finalize()

	if sub.Score() != 0 {
		t.Errorf("Score() = %d, want 0", sub.Score())
	}

	if len(sub.Feedback()) != 3 {
		t.Fatalf("expected a bare banner for the unmatched part, got %q", sub.Feedback())
	}

	if sub.Feedback()[1] != "Report" {
		t.Errorf("banner title = %q, want %q", sub.Feedback()[1], "Report")
	}
}

func TestSubmission_Finalize_MultiplePartsInRuleOrder(t *testing.T) {
	sub := NewSubmission("123456789")

	first := sub.AddPart(mustRule(t, "a", "Part A", `\.a$`))
	first.Score = 2

	second := sub.AddPart(mustRule(t, "b", "Part B", `\.b$`))
	second.Score = 3

	sub.Finalize()

	if sub.Score() != 5 {
		t.Errorf("Score() = %d, want 5", sub.Score())
	}

	feedback := strings.Join(sub.Feedback(), "\n")
	if strings.Index(feedback, "Part A") > strings.Index(feedback, "Part B") {
		t.Error("expected parts to aggregate in rule order")
	}
}

func TestSubmission_Finalize_Idempotent(t *testing.T) {
	sub := NewSubmission("123456789")
	part := sub.AddPart(mustRule(t, "pdf", "Report", `\.pdf$`))
	part.Score = 5

	sub.Finalize()
	firstFeedback := len(sub.Feedback())

	sub.Finalize()

	if sub.Score() != 5 {
		t.Errorf("Score() after second Finalize = %d, want 5", sub.Score())
	}

	if len(sub.Feedback()) != firstFeedback {
		t.Error("second Finalize must not accumulate duplicate banners")
	}
}

func TestNewMissingSubmission_IsPreFinalized(t *testing.T) {
	sub := NewMissingSubmission("987654321", "No submission")

	if !sub.Finalized() {
		t.Error("missing submission must start finalized")
	}

	if sub.Score() != 0 {
		t.Errorf("Score() = %d, want 0", sub.Score())
	}

	if len(sub.Feedback()) != 1 || sub.Feedback()[0] != "No submission" {
		t.Errorf("Feedback() = %q, want the configured message only", sub.Feedback())
	}

	if sub.Status != StatusMissing {
		t.Errorf("Status = %q, want %q", sub.Status, StatusMissing)
	}
}

func TestSubmission_MatchedCount(t *testing.T) {
	sub := NewSubmission("123456789")

	py := sub.AddPart(mustRule(t, "py", "Code", `\.py$`))
	py.Append("a.py", nil)
	py.Append("b.py", nil)

	sub.AddPart(mustRule(t, "pdf", "Report", `\.pdf$`))

	if sub.MatchedCount() != 2 {
		t.Errorf("MatchedCount() = %d, want 2", sub.MatchedCount())
	}
}
