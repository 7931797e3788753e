package model

import "testing"

func TestSpecRule_SinglePattern_MatchesBaseNameOnly(t *testing.T) {
	rule, err := NewSpecRule("pdf", "Report", `\.pdf$`)
	if err != nil {
		t.Fatalf("NewSpecRule() error = %v", err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{"report.pdf", true},
		{"deeply/nested/dirs/report.pdf", true},
		{"report.pdf.bak", false},
		// A directory segment must never satisfy a base-name pattern.
		{"notes.pdf.d/readme.txt", false},
	}

	for _, tc := range cases {
		if got := rule.Matches(tc.path); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestSpecRule_SinglePattern_SearchIsUnanchored(t *testing.T) {
	rule, err := NewSpecRule("ex1", "Exercise 1", "exercise1")
	if err != nil {
		t.Fatalf("NewSpecRule() error = %v", err)
	}

	if !rule.Matches("sub/my_exercise1_final.py") {
		t.Error("expected unanchored search to match infix pattern")
	}
}

func TestSpecRule_SequencePattern_SegmentCountMustAgree(t *testing.T) {
	rule, err := NewSequenceRule("src", "Source", []string{"src", `\.py$`})
	if err != nil {
		t.Fatalf("NewSequenceRule() error = %v", err)
	}

	cases := []struct {
		path string
		want bool
	}{
		{"src/main.py", true},
		{"main.py", false},
		{"src/util/main.py", false},
		{"lib/main.py", false},
	}

	for _, tc := range cases {
		if got := rule.Matches(tc.path); got != tc.want {
			t.Errorf("Matches(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestSpecRule_AlternativesPattern_AnyMatchSuffices(t *testing.T) {
	rule, err := NewAlternativesRule("docs", "Documentation", []string{`\.md$`, `\.rst$`})
	if err != nil {
		t.Fatalf("NewAlternativesRule() error = %v", err)
	}

	if !rule.Matches("docs/README.md") {
		t.Error("expected .md alternative to match")
	}

	if !rule.Matches("INSTALL.rst") {
		t.Error("expected .rst alternative to match")
	}

	if rule.Matches("README.txt") {
		t.Error("expected .txt to match no alternative")
	}
}

func TestNewSpecRule_RejectsDegenerateShapes(t *testing.T) {
	if _, err := NewSpecRule("", "Report", `\.pdf$`); err == nil {
		t.Error("expected error for empty identifier")
	}

	if _, err := NewSpecRule("pdf", "Report", ""); err == nil {
		t.Error("expected error for empty pattern")
	}

	if _, err := NewSequenceRule("src", "Source", nil); err == nil {
		t.Error("expected error for empty pattern sequence")
	}

	if _, err := NewSpecRule("pdf", "Report", `[unclosed`); err == nil {
		t.Error("expected error for invalid regexp")
	}
}
