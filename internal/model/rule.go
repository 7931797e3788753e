package model

import (
	"errors"
	"fmt"
	"path"
	"regexp"
	"strings"
)

// Path represents a file system path.
type Path string

// PatternForm defines how a SpecRule applies its patterns to an entry path.
type PatternForm int

const (
	// SinglePattern applies one regexp to the base name of the entry.
	SinglePattern PatternForm = iota

	// SequencePattern splits the entry path on '/' and applies one regexp
	// per segment; every segment must match and the counts must be equal.
	SequencePattern

	// AlternativesPattern applies a set of regexps to the base name; any
	// single match suffices.
	AlternativesPattern
)

// ErrEmptyPattern is returned when a rule is constructed without any pattern.
var ErrEmptyPattern = errors.New("spec rule: empty pattern")

// SpecRule identifies the entries inside a submission container that make up
// one logical part of a submission. It is immutable once constructed and
// matching is a pure function of the rule and the candidate path.
type SpecRule struct {
	Identifier string
	Title      string

	form     PatternForm
	patterns []*regexp.Regexp
}

// NewSpecRule creates a single-pattern rule matched against entry base names.
func NewSpecRule(identifier, title, pattern string) (*SpecRule, error) {
	return newRule(identifier, title, SinglePattern, []string{pattern})
}

// NewSequenceRule creates a positional-sequence rule: the entry path is split
// on '/' and every pattern must match its corresponding segment.
func NewSequenceRule(identifier, title string, patterns []string) (*SpecRule, error) {
	return newRule(identifier, title, SequencePattern, patterns)
}

// NewAlternativesRule creates a rule that matches when any of the patterns
// matches the entry base name.
func NewAlternativesRule(identifier, title string, patterns []string) (*SpecRule, error) {
	return newRule(identifier, title, AlternativesPattern, patterns)
}

func newRule(identifier, title string, form PatternForm, patterns []string) (*SpecRule, error) {
	if strings.TrimSpace(identifier) == "" {
		return nil, fmt.Errorf("spec rule: empty identifier (title %q)", title)
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w (rule %q)", ErrEmptyPattern, identifier)
	}

	compiled := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		if pattern == "" {
			return nil, fmt.Errorf("%w (rule %q)", ErrEmptyPattern, identifier)
		}

		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("spec rule %q: compile pattern %q: %w", identifier, pattern, err)
		}

		compiled = append(compiled, re)
	}

	return &SpecRule{
		Identifier: identifier,
		Title:      title,
		form:       form,
		patterns:   compiled,
	}, nil
}

// Form returns the pattern form of the rule.
func (r *SpecRule) Form() PatternForm {
	return r.form
}

// Matches reports whether the entry path belongs to this rule. The path is
// expected to use '/' as separator; callers normalize before matching.
func (r *SpecRule) Matches(entryPath string) bool {
	switch r.form {
	case SequencePattern:
		segments := strings.Split(entryPath, "/")
		if len(segments) != len(r.patterns) {
			return false
		}

		for i, pattern := range r.patterns {
			if !pattern.MatchString(segments[i]) {
				return false
			}
		}

		return true

	case AlternativesPattern:
		base := path.Base(entryPath)
		for _, pattern := range r.patterns {
			if pattern.MatchString(base) {
				return true
			}
		}

		return false

	default:
		return r.patterns[0].MatchString(path.Base(entryPath))
	}
}
