package domain

import (
	"fmt"
	"regexp"

	"gopkg.in/yaml.v3"

	m "github.com/metaneutrons/logtidy/internal/model"
)

// compiledRule pairs a patch rule with its compiled pattern.
type compiledRule struct {
	rule    m.PatchRule
	pattern *regexp.Regexp
}

// RuleSet is an ordered list of compiled regex replacements.
type RuleSet struct {
	rules []compiledRule
}

// ParseRuleSet reads patch rules from YAML and compiles their patterns.
// Rules apply in file order.
func ParseRuleSet(data []byte) (*RuleSet, error) {
	var raw struct {
		Rules []m.PatchRule `yaml:"rules"`
	}

	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}

	if len(raw.Rules) == 0 {
		return nil, fmt.Errorf("parse rules: no rules defined")
	}

	set := &RuleSet{rules: make([]compiledRule, 0, len(raw.Rules))}

	for _, rule := range raw.Rules {
		pattern, err := regexp.Compile(rule.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", rule.Name, err)
		}

		set.rules = append(set.rules, compiledRule{rule: rule, pattern: pattern})
	}

	return set, nil
}

// Len returns the number of rules in the set.
func (s *RuleSet) Len() int {
	return len(s.rules)
}

// Apply runs every rule over content in order. Returns the resulting
// content and the total number of replacements made.
func (s *RuleSet) Apply(content []byte) ([]byte, int) {
	replacements := 0
	out := content

	for _, compiled := range s.rules {
		matches := len(compiled.pattern.FindAllIndex(out, -1))
		if matches == 0 {
			continue
		}

		out = compiled.pattern.ReplaceAll(out, []byte(compiled.rule.Replacement))
		replacements += matches
	}

	return out, replacements
}
