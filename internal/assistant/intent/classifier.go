package intent

import (
	"math"
	"strings"
)

// shortUtteranceScore is the forced score for bare greetings and farewells.
// It clears the top confidence band by construction.
const shortUtteranceScore = 100

// Classifier scores utterances against its ruleset. Immutable after
// construction; Retrain builds a new instance instead of mutating.
type Classifier struct {
	ruleset Ruleset
}

// NewClassifier validates the ruleset and builds a classifier over a private
// copy of it.
func NewClassifier(rs Ruleset) (*Classifier, error) {
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{ruleset: rs.clone()}, nil
}

// NewDefaultClassifier builds a classifier over the compiled-in ruleset.
func NewDefaultClassifier() *Classifier {
	c, err := NewClassifier(DefaultRuleset())
	if err != nil {
		// The compiled-in ruleset always validates.
		panic(err)
	}
	return c
}

// Version reports the version string of the active ruleset.
func (c *Classifier) Version() string {
	return c.ruleset.Version
}

// Retrain builds a new classifier from the given ruleset. The receiver keeps
// serving its own ruleset unchanged.
func (c *Classifier) Retrain(rs Ruleset) (*Classifier, error) {
	return NewClassifier(rs)
}

// Classify resolves the utterance to an intent name with a confidence in
// [0.2, 0.95] and the per-rule raw scores.
func (c *Classifier) Classify(utterance string) Intent {
	normalized := strings.ToLower(strings.TrimSpace(utterance))
	tokens := strings.Fields(normalized)

	scores := make(map[string]int, len(c.ruleset.Rules))
	for _, rule := range c.ruleset.Rules {
		scores[rule.Name] = scoreRule(rule, normalized, tokens)
	}

	// Bare greetings like "hi" or "bye now" carry almost no keyword mass;
	// force them into the top confidence band.
	if len(tokens) >= 1 && len(tokens) <= 2 {
		if _, declared := scores[IntentGreeting]; declared && containsWord(greetingWords, tokens[0]) {
			scores[IntentGreeting] = shortUtteranceScore
		}
		if _, declared := scores[IntentGoodbye]; declared && containsWord(farewellWords, tokens[0]) {
			scores[IntentGoodbye] = shortUtteranceScore
		}
	}

	// Highest score wins; ties resolve to the earlier declared rule.
	name, best := "", 0
	for _, rule := range c.ruleset.Rules {
		if s := scores[rule.Name]; name == "" || s > best {
			name, best = rule.Name, s
		}
	}

	confidence := confidenceFor(best)
	if best == 0 || confidence < 0.3 {
		name = IntentUnknown
	}

	return Intent{
		Name:       name,
		Confidence: confidence,
		Scores:     scores,
	}
}

// scoreRule accumulates the keyword-overlap score for one rule. Full phrase
// hits weigh in at 3 per keyword word; any utterance token longer than two
// characters that appears inside a keyword adds one. Partial hits are
// accepted fuzziness, not filtered.
func scoreRule(rule Rule, normalized string, tokens []string) int {
	score := 0
	for _, keyword := range rule.Keywords {
		if strings.Contains(normalized, keyword) {
			score += len(strings.Fields(keyword)) * 3
		}
		for _, token := range tokens {
			if len(token) > 2 && strings.Contains(keyword, token) {
				score++
			}
		}
	}
	return score
}

// confidenceFor maps a raw overlap score onto the step bands used across the
// pipeline: 0.95 for forced matches, up to 0.9 for strong overlap, up to 0.7
// for weak overlap, 0.2 for none.
func confidenceFor(score int) float64 {
	switch {
	case score >= shortUtteranceScore:
		return 0.95
	case score > 5:
		return math.Min(0.9, 0.7+float64(score)*0.02)
	case score > 0:
		return math.Min(0.7, 0.4+float64(score)*0.1)
	default:
		return 0.2
	}
}

func containsWord(words []string, token string) bool {
	for _, w := range words {
		if w == token {
			return true
		}
	}
	return false
}
