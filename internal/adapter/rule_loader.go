package adapter

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	m "automark.dev/pkg/automark/internal/model"
)

// ruleEntry is the YAML shape of one rule. Pattern accepts either a scalar
// (single form) or a sequence (positional form); Any is the alternatives form.
type ruleEntry struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	Pattern yaml.Node `yaml:"pattern"`
	Any     []string  `yaml:"any"`
}

type ruleDocument struct {
	Rules []ruleEntry `yaml:"rules"`
}

// LoadRules reads the ordered SpecRule definitions from the `rules` section of
// the config file. Degenerate shapes (no pattern, both pattern and any, empty
// identifier) are construction errors and fatal at load.
func LoadRules(path m.Path) ([]*m.SpecRule, error) {
	data, err := os.ReadFile(string(path))
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	var doc ruleDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}

	if len(doc.Rules) == 0 {
		return nil, fmt.Errorf("rules %s: no rules defined", path)
	}

	rules := make([]*m.SpecRule, 0, len(doc.Rules))

	for _, entry := range doc.Rules {
		rule, err := buildRule(entry)
		if err != nil {
			return nil, fmt.Errorf("rules %s: %w", path, err)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}

func buildRule(entry ruleEntry) (*m.SpecRule, error) {
	hasPattern := entry.Pattern.Kind != 0
	hasAny := len(entry.Any) > 0

	switch {
	case hasPattern && hasAny:
		return nil, fmt.Errorf("rule %q: pattern and any are mutually exclusive", entry.ID)

	case hasAny:
		return m.NewAlternativesRule(entry.ID, entry.Title, entry.Any)

	case entry.Pattern.Kind == yaml.ScalarNode:
		var pattern string
		if err := entry.Pattern.Decode(&pattern); err != nil {
			return nil, fmt.Errorf("rule %q: %w", entry.ID, err)
		}

		return m.NewSpecRule(entry.ID, entry.Title, pattern)

	case entry.Pattern.Kind == yaml.SequenceNode:
		var patterns []string
		if err := entry.Pattern.Decode(&patterns); err != nil {
			return nil, fmt.Errorf("rule %q: %w", entry.ID, err)
		}

		return m.NewSequenceRule(entry.ID, entry.Title, patterns)

	case hasPattern:
		return nil, fmt.Errorf("rule %q: pattern must be a string or a list of strings", entry.ID)

	default:
		return nil, fmt.Errorf("rule %q: missing pattern", entry.ID)
	}
}
