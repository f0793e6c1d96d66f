package intent

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

var (
	ErrRulesetLoadFailed = errors.New("RULESET_LOAD_FAILED")
	ErrRulesetInvalid    = errors.New("RULESET_INVALID")
)

// LoadRuleset reads a ruleset from a YAML file. The file carries the same
// shape as DefaultRuleset: a version string and an ordered rules list.
func LoadRuleset(path string) (Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Ruleset{}, fmt.Errorf("%w: %v", ErrRulesetLoadFailed, err)
	}

	var rs Ruleset
	if err := yaml.Unmarshal(data, &rs); err != nil {
		return Ruleset{}, fmt.Errorf("%w: %v", ErrRulesetLoadFailed, err)
	}

	if err := rs.Validate(); err != nil {
		return Ruleset{}, err
	}

	return rs.clone(), nil
}

// Validate checks the structural invariants the classifier relies on.
func (rs Ruleset) Validate() error {
	if rs.Version == "" {
		return fmt.Errorf("%w: version is required", ErrRulesetInvalid)
	}
	if len(rs.Rules) == 0 {
		return fmt.Errorf("%w: at least one rule is required", ErrRulesetInvalid)
	}

	seen := make(map[string]bool, len(rs.Rules))
	for i, rule := range rs.Rules {
		if rule.Name == "" {
			return fmt.Errorf("%w: rule %d has no name", ErrRulesetInvalid, i)
		}
		if rule.Name == IntentUnknown {
			return fmt.Errorf("%w: %q is reserved for the override result", ErrRulesetInvalid, IntentUnknown)
		}
		if seen[rule.Name] {
			return fmt.Errorf("%w: duplicate rule name %q", ErrRulesetInvalid, rule.Name)
		}
		seen[rule.Name] = true

		if len(rule.Keywords) == 0 {
			return fmt.Errorf("%w: rule %q has no keywords", ErrRulesetInvalid, rule.Name)
		}
		for _, kw := range rule.Keywords {
			if strings.TrimSpace(kw) == "" {
				return fmt.Errorf("%w: rule %q contains an empty keyword", ErrRulesetInvalid, rule.Name)
			}
		}
	}

	return nil
}

// clone deep-copies the ruleset and lowercases every keyword. Keywords are
// matched against lowercased input, so the stored form must be lowercase.
func (rs Ruleset) clone() Ruleset {
	out := Ruleset{
		Version: rs.Version,
		Rules:   make([]Rule, len(rs.Rules)),
	}
	for i, rule := range rs.Rules {
		keywords := make([]string, len(rule.Keywords))
		for j, kw := range rule.Keywords {
			keywords[j] = strings.ToLower(strings.TrimSpace(kw))
		}
		out.Rules[i] = Rule{Name: rule.Name, Keywords: keywords}
	}
	return out
}
