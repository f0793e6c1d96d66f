// internal/assistant/intent/classifier_test.go
package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestRuleset(rules ...Rule) Ruleset {
	return Ruleset{Version: "test", Rules: rules}
}

func mustClassifier(t *testing.T, rs Ruleset) *Classifier {
	t.Helper()
	c, err := NewClassifier(rs)
	require.NoError(t, err)
	return c
}

// ==========================
// Core Classification Tests
// ==========================

func TestClassify_DefaultRuleset(t *testing.T) {
	c := NewDefaultClassifier()

	tests := []struct {
		name           string
		utterance      string
		expectedIntent string
		expectedConf   float64
	}{
		{
			name:           "bare greeting",
			utterance:      "hello",
			expectedIntent: IntentGreeting,
			expectedConf:   0.95,
		},
		{
			name:           "two token greeting",
			utterance:      "hey there",
			expectedIntent: IntentGreeting,
			expectedConf:   0.95,
		},
		{
			name:           "greeting with shouting and whitespace",
			utterance:      "  HELLO  ",
			expectedIntent: IntentGreeting,
			expectedConf:   0.95,
		},
		{
			name:           "bare farewell",
			utterance:      "bye",
			expectedIntent: IntentGoodbye,
			expectedConf:   0.95,
		},
		{
			name:           "nonsense",
			utterance:      "xyzzy plugh",
			expectedIntent: IntentUnknown,
			expectedConf:   0.2,
		},
		{
			name:           "empty input",
			utterance:      "",
			expectedIntent: IntentUnknown,
			expectedConf:   0.2,
		},
		{
			name:      "calculation request",
			utterance: "I want to calculate my carbon footprint",
			// calculate: 3+1, carbon footprint: 6+1+1, my footprint: 1 = 13
			// confidence min(0.9, 0.7 + 13*0.02) = 0.9
			expectedIntent: IntentCalculateCarbon,
			expectedConf:   0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := c.Classify(tt.utterance)

			assert.Equal(t, tt.expectedIntent, result.Name)
			assert.InDelta(t, tt.expectedConf, result.Confidence, 0.0001)
		})
	}
}

func TestClassify_ScoresCoverEveryRule(t *testing.T) {
	c := NewDefaultClassifier()
	rs := DefaultRuleset()

	result := c.Classify("xyzzy plugh")

	assert.Len(t, result.Scores, len(rs.Rules))
	for _, rule := range rs.Rules {
		score, ok := result.Scores[rule.Name]
		assert.True(t, ok, "missing score for %s", rule.Name)
		assert.Equal(t, 0, score)
	}
}

func TestClassify_PhraseAndTokenScoring(t *testing.T) {
	rs := newTestRuleset(
		Rule{Name: "energy", Keywords: []string{"alpha", "alpha beta"}},
	)
	c := mustClassifier(t, rs)

	result := c.Classify("alpha beta")

	// "alpha": phrase 1*3 + token alpha = 4
	// "alpha beta": phrase 2*3 + tokens alpha, beta = 8
	assert.Equal(t, 12, result.Scores["energy"])
	assert.Equal(t, "energy", result.Name)
	// min(0.9, 0.7 + 12*0.02) = 0.9
	assert.InDelta(t, 0.9, result.Confidence, 0.0001)
}

func TestClassify_WeakOverlapBand(t *testing.T) {
	rs := newTestRuleset(
		Rule{Name: "energy", Keywords: []string{"alpha"}},
	)
	c := mustClassifier(t, rs)

	result := c.Classify("alpha")

	// phrase 3 + token 1 = 4, confidence min(0.7, 0.4 + 4*0.1) = 0.7
	assert.Equal(t, 4, result.Scores["energy"])
	assert.Equal(t, "energy", result.Name)
	assert.InDelta(t, 0.7, result.Confidence, 0.0001)
}

func TestClassify_ShortTokensDoNotVote(t *testing.T) {
	rs := newTestRuleset(
		Rule{Name: "energy", Keywords: []string{"go on now"}},
	)
	c := mustClassifier(t, rs)

	// "go" and "on" are two characters and never count as token hits.
	result := c.Classify("go on")

	assert.Equal(t, 0, result.Scores["energy"])
	assert.Equal(t, IntentUnknown, result.Name)
}

func TestClassify_TieBreakIsDeclarationOrder(t *testing.T) {
	shared := []string{"shared keyword"}

	first := mustClassifier(t, newTestRuleset(
		Rule{Name: "alpha", Keywords: shared},
		Rule{Name: "beta", Keywords: shared},
	))
	second := mustClassifier(t, newTestRuleset(
		Rule{Name: "beta", Keywords: shared},
		Rule{Name: "alpha", Keywords: shared},
	))

	for i := 0; i < 50; i++ {
		assert.Equal(t, "alpha", first.Classify("shared keyword").Name)
		assert.Equal(t, "beta", second.Classify("shared keyword").Name)
	}
}

func TestClassify_GreetingOverrideNeedsShortUtterance(t *testing.T) {
	c := NewDefaultClassifier()

	// Three tokens: the short-utterance override does not apply, scoring does.
	result := c.Classify("hello to everyone")

	assert.Equal(t, IntentGreeting, result.Name)
	assert.Less(t, result.Confidence, 0.95)
}

func TestClassify_GreetingOverrideSkipsUndeclaredRule(t *testing.T) {
	rs := newTestRuleset(
		Rule{Name: "energy", Keywords: []string{"kilowatt"}},
	)
	c := mustClassifier(t, rs)

	result := c.Classify("hello")

	assert.Equal(t, IntentUnknown, result.Name)
	assert.NotContains(t, result.Scores, IntentGreeting)
}

// ==========================
// Retrain Tests
// ==========================

func TestRetrain_ReturnsIndependentClassifier(t *testing.T) {
	original := mustClassifier(t, newTestRuleset(
		Rule{Name: "energy", Keywords: []string{"kilowatt"}},
	))

	retrained, err := original.Retrain(Ruleset{
		Version: "test-2",
		Rules: []Rule{
			{Name: "travel", Keywords: []string{"kilowatt"}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "travel", retrained.Classify("kilowatt usage").Name)
	assert.Equal(t, "energy", original.Classify("kilowatt usage").Name)
	assert.Equal(t, "test", original.Version())
	assert.Equal(t, "test-2", retrained.Version())
}

func TestRetrain_RejectsInvalidRuleset(t *testing.T) {
	original := NewDefaultClassifier()

	_, err := original.Retrain(Ruleset{Version: "broken"})

	assert.ErrorIs(t, err, ErrRulesetInvalid)
}

func TestNewClassifier_CopiesRuleset(t *testing.T) {
	rs := newTestRuleset(
		Rule{Name: "energy", Keywords: []string{"kilowatt"}},
	)
	c := mustClassifier(t, rs)

	// Mutating the source ruleset after construction must not leak in.
	rs.Rules[0].Keywords[0] = "zeppelin"

	assert.Equal(t, "energy", c.Classify("kilowatt usage").Name)
}

// ==========================
// Benchmarks
// ==========================

func BenchmarkClassify(b *testing.B) {
	c := NewDefaultClassifier()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Classify("how can i reduce the carbon footprint of my manufacturing company")
	}
}
