package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Concept Lookups
// ==========================

func TestExplainConcept_KnownKeys(t *testing.T) {
	base := NewBase()

	for _, key := range base.ConceptKeys() {
		c := base.ExplainConcept(key)
		assert.NotEmpty(t, c.Text, "concept %q should have text", key)
		assert.Equal(t, conceptConfidence, c.Confidence, "concept %q", key)

		// Related entries must themselves resolve without falling back.
		for _, rel := range c.Related {
			relC := base.ExplainConcept(rel)
			assert.NotEqual(t, fallbackConcept.Text, relC.Text, "related %q of %q should be a known concept", rel, key)
		}
	}
}

func TestExplainConcept_NormalizesKey(t *testing.T) {
	base := NewBase()

	exact := base.ExplainConcept("carbon footprint")
	sloppy := base.ExplainConcept("  Carbon Footprint ")

	assert.Equal(t, exact, sloppy)
}

func TestExplainConcept_UnknownFallsBack(t *testing.T) {
	base := NewBase()

	c := base.ExplainConcept("quantum chromodynamics")

	assert.Equal(t, fallbackConcept, c)
	assert.Equal(t, fallbackConfidence, c.Confidence)
}

func TestMatchConceptKey(t *testing.T) {
	base := NewBase()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "plain mention", text: "what is a carbon footprint?", want: "carbon footprint"},
		{name: "mixed case", text: "Explain NET ZERO please", want: "net zero"},
		{name: "longer phrase wins over prefix", text: "tell me about carbon offset programs", want: "carbon offset"},
		{name: "scope number", text: "what does scope 3 cover", want: "scope 3"},
		{name: "no concept", text: "how is the weather today", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.MatchConceptKey(tt.text))
		})
	}
}

// ==========================
// Recommendations
// ==========================

func TestRecommendations_KnownIndustryAndLevels(t *testing.T) {
	base := NewBase()

	for _, level := range []string{LevelBeginner, LevelIntermediate, LevelAdvanced} {
		recs := base.Recommendations("manufacturing", level)
		require.NotEmpty(t, recs, "level %q", level)
		for _, r := range recs {
			assert.NotEmpty(t, r)
		}
	}

	// Tiers should actually differ.
	assert.NotEqual(t,
		base.Recommendations("manufacturing", LevelBeginner),
		base.Recommendations("manufacturing", LevelAdvanced))
}

func TestRecommendations_Fallbacks(t *testing.T) {
	base := NewBase()

	general := base.Recommendations("", LevelBeginner)
	unknownIndustry := base.Recommendations("floristry", LevelBeginner)
	unknownLevel := base.Recommendations("retail", "expert")

	assert.Equal(t, general, unknownIndustry, "unknown industry should use the general list")
	assert.Equal(t, base.Recommendations("retail", LevelBeginner), unknownLevel, "unknown level should use the beginner tier")
}

func TestRecommendations_AliasAndCopy(t *testing.T) {
	base := NewBase()

	assert.Equal(t, base.Recommendations("technology", LevelBeginner), base.Recommendations("tech", LevelBeginner))

	recs := base.Recommendations("technology", LevelBeginner)
	recs[0] = "mutated"
	assert.NotEqual(t, "mutated", base.Recommendations("technology", LevelBeginner)[0])
}

// ==========================
// Industry Insights
// ==========================

func TestIndustryInsights(t *testing.T) {
	base := NewBase()

	tests := []struct {
		name         string
		industry     string
		questionType string
		wantDefault  bool
	}{
		{name: "default variant", industry: "technology", questionType: ""},
		{name: "named variant", industry: "technology", questionType: "benchmark"},
		{name: "unknown variant uses default", industry: "retail", questionType: "forecast"},
		{name: "unknown industry", industry: "floristry", questionType: "", wantDefault: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			insight := base.IndustryInsights(tt.industry, tt.questionType)

			require.NotEmpty(t, insight.Answer)
			if tt.wantDefault {
				assert.Equal(t, defaultInsight, insight)
			} else {
				assert.NotEqual(t, defaultInsight, insight)
				assert.NotEmpty(t, insight.FollowUpQuestions)
			}
		})
	}
}

func TestIndustryInsights_VariantSelection(t *testing.T) {
	base := NewBase()

	def := base.IndustryInsights("technology", "")
	bench := base.IndustryInsights("technology", "benchmark")
	unknownVariant := base.IndustryInsights("technology", "forecast")

	assert.NotEqual(t, def, bench)
	assert.Equal(t, def, unknownVariant)
}

// ==========================
// Compliance
// ==========================

func TestComplianceInfo(t *testing.T) {
	base := NewBase()

	tests := []struct {
		name     string
		standard string
		region   string
		contains string
	}{
		{name: "base text", standard: "ghg protocol", region: "", contains: "scope 1, 2, and 3"},
		{name: "regional note appended", standard: "csrd", region: "eu", contains: "financial year 2024"},
		{name: "unknown region keeps base", standard: "csrd", region: "antarctica", contains: "Corporate Sustainability Reporting Directive"},
		{name: "case insensitive", standard: "GHG Protocol", region: "EU", contains: "CSRD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base.ComplianceInfo(tt.standard, tt.region)
			assert.Contains(t, c.Information, tt.contains)
		})
	}
}

func TestComplianceInfo_RegionAppendsToBase(t *testing.T) {
	base := NewBase()

	plain := base.ComplianceInfo("secr", "")
	regional := base.ComplianceInfo("secr", "uk")

	assert.True(t, strings.HasPrefix(regional.Information, plain.Information))
	assert.Greater(t, len(regional.Information), len(plain.Information))
}

func TestComplianceInfo_UnknownStandard(t *testing.T) {
	base := NewBase()

	assert.Equal(t, fallbackCompliance, base.ComplianceInfo("klingon accord", ""))
}

func TestMatchStandard(t *testing.T) {
	base := NewBase()

	assert.Equal(t, "csrd", base.MatchStandard("does CSRD apply to us?"))
	assert.Equal(t, "iso 14064", base.MatchStandard("we want iso 14064 verification"))
	assert.Equal(t, "", base.MatchStandard("tell me about taxes"))
}
