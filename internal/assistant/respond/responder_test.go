package respond

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carbon-assistant/internal/assistant/contextstore"
	"carbon-assistant/internal/assistant/entity"
	"carbon-assistant/internal/assistant/intent"
	"carbon-assistant/internal/assistant/knowledge"
	"carbon-assistant/internal/carbon"
)

// newTestResponder pins template selection to the first entry so texts are
// deterministic.
func newTestResponder() *Responder {
	r := NewResponder(knowledge.NewBase(), carbon.NewEngine())
	r.pick = func(n int) int { return 0 }
	return r
}

func intentOf(name string, confidence float64) intent.Intent {
	return intent.Intent{Name: name, Confidence: confidence}
}

// ==========================
// Greeting / Goodbye / Fallback
// ==========================

func TestRespond_Greeting(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("hello", intentOf(intent.IntentGreeting, 0.95), nil, contextstore.Context{})

	assert.Equal(t, greetingTemplates[0], resp.Text)
	assert.Equal(t, starterSuggestions, resp.Suggestions)
	assert.Equal(t, 0.95, resp.Confidence)
	assert.Nil(t, resp.Data)
}

func TestRespond_GreetingVariesWithinPool(t *testing.T) {
	r := NewResponder(knowledge.NewBase(), carbon.NewEngine())

	for i := 0; i < 20; i++ {
		resp := r.Respond("hi", intentOf(intent.IntentGreeting, 0.95), nil, contextstore.Context{})
		assert.Contains(t, greetingTemplates, resp.Text)
	}
}

func TestRespond_Goodbye(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("bye", intentOf(intent.IntentGoodbye, 0.95), nil, contextstore.Context{})

	assert.Equal(t, goodbyeTemplates[0], resp.Text)
	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, 0.95, resp.Confidence)
}

func TestRespond_UnknownIntentFallsBack(t *testing.T) {
	r := newTestResponder()

	for _, name := range []string{intent.IntentUnknown, "made_up_intent"} {
		resp := r.Respond("gibberish", intentOf(name, 0.2), nil, contextstore.Context{})

		assert.Contains(t, fallbackTemplates, resp.Text)
		assert.Equal(t, starterSuggestions, resp.Suggestions)
		assert.Equal(t, FallbackConfidence, resp.Confidence)
	}
}

func TestFallback(t *testing.T) {
	resp := Fallback()

	assert.Contains(t, fallbackTemplates, resp.Text)
	assert.Equal(t, starterSuggestions, resp.Suggestions)
	assert.Equal(t, FallbackConfidence, resp.Confidence)
}

// ==========================
// Calculation Handler
// ==========================

func TestRespond_CalculateWithEntities(t *testing.T) {
	r := newTestResponder()
	entities := []entity.Entity{
		{Type: entity.TypeEnergy, Value: "10,000", Confidence: 0.9},
		{Type: entity.TypeFuel, Value: "500", Confidence: 0.9},
	}

	resp := r.Respond("we used 10,000 kwh and 500 liters", intentOf(intent.IntentCalculateCarbon, 0.9), entities, contextstore.Context{})

	// 10000*0.45 + 500*2.68 = 5840, electricity share 77%.
	assert.Contains(t, resp.Text, "5840 kg CO2e")
	assert.Contains(t, resp.Text, "medium footprint")
	assert.Contains(t, resp.Text, "electricity at 77%")
	assert.Equal(t, afterCalculationSuggestions, resp.Suggestions)
	assert.Equal(t, 0.9, resp.Confidence)

	result, ok := resp.Data["result"].(carbon.Result)
	require.True(t, ok)
	assert.Equal(t, 5840.0, result.TotalKgCO2e)
	assert.Equal(t, []string{carbon.CategoryElectricity, carbon.CategoryFuel}, resp.Data["supplied"])
}

func TestRespond_CalculateNamesMissingCategories(t *testing.T) {
	r := newTestResponder()
	entities := []entity.Entity{{Type: entity.TypeEnergy, Value: "1000", Confidence: 0.9}}

	resp := r.Respond("1000 kwh", intentOf(intent.IntentCalculateCarbon, 0.9), entities, contextstore.Context{})

	assert.Contains(t, resp.Text, "fuel use (liters), travel distance (km), waste (kg) and employee count")
}

func TestRespond_CalculateWithoutDataAsksForIt(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("calculate my footprint", intentOf(intent.IntentCalculateCarbon, 0.9), nil, contextstore.Context{})

	assert.Contains(t, resp.Text, "kWh")
	assert.Equal(t, missingDataSuggestions, resp.Suggestions)
	assert.Len(t, resp.Data["missing"], 5)
}

// ==========================
// Knowledge Handlers
// ==========================

func TestRespond_ExplainConcept(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("what is a carbon footprint?", intentOf(intent.IntentExplainConcept, 0.9), nil, contextstore.Context{})

	assert.Contains(t, resp.Text, "greenhouse gases")
	assert.Equal(t, "carbon footprint", resp.Data["concept"])
	assert.Contains(t, resp.Suggestions, "What is emission factor?")
}

func TestRespond_ExplainUnknownConceptUsesKnowledgeFallback(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("explain blockchain to me", intentOf(intent.IntentExplainConcept, 0.7), nil, contextstore.Context{})

	assert.Contains(t, resp.Text, "don't have a detailed explanation")
	assert.Equal(t, "", resp.Data["concept"])
	assert.Equal(t, 0.7, resp.Confidence)
}

func TestRespond_RecommendationLevelProgresses(t *testing.T) {
	r := newTestResponder()
	in := intentOf(intent.IntentRecommendations, 0.9)

	priorAsks := func(n int) contextstore.Context {
		var ctx contextstore.Context
		for i := 0; i < n; i++ {
			ctx.Intents = append(ctx.Intents, contextstore.IntentRecord{Name: intent.IntentRecommendations, Confidence: 0.9, At: time.Now()})
		}
		return ctx
	}

	assert.Equal(t, knowledge.LevelBeginner, r.Respond("tips", in, nil, priorAsks(0)).Data["level"])
	assert.Equal(t, knowledge.LevelIntermediate, r.Respond("tips", in, nil, priorAsks(1)).Data["level"])
	assert.Equal(t, knowledge.LevelAdvanced, r.Respond("tips", in, nil, priorAsks(2)).Data["level"])
	assert.Equal(t, knowledge.LevelAdvanced, r.Respond("tips", in, nil, priorAsks(7)).Data["level"])

	advanced := r.Respond("tips", in, nil, priorAsks(2))
	assert.NotContains(t, advanced.Suggestions, "Ask again for more advanced actions")
}

func TestRespond_RecommendationsPersonalizeAfterCalculation(t *testing.T) {
	r := newTestResponder()
	ctx := contextstore.Context{LastAction: intent.IntentCalculateCarbon}

	resp := r.Respond("how can i reduce it", intentOf(intent.IntentRecommendations, 0.9), nil, ctx)

	assert.Contains(t, resp.Text, "Building on your calculation")
}

func TestRespond_RecommendationsUseIndustryFromSession(t *testing.T) {
	r := newTestResponder()
	ctx := contextstore.Context{
		LastAction: intent.IntentIndustryInsights,
		Entities: []contextstore.EntityRecord{
			{Type: string(entity.TypeIndustry), Value: "retail", Confidence: 0.9, At: time.Now()},
		},
	}

	resp := r.Respond("give me suggestions", intentOf(intent.IntentRecommendations, 0.9), nil, ctx)

	assert.Equal(t, "retail", resp.Data["industry"])
	assert.Contains(t, resp.Text, "retail sector")
}

func TestRespond_InsightsAskForIndustryWhenUnknown(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("tell me about my industry", intentOf(intent.IntentIndustryInsights, 0.9), nil, contextstore.Context{})

	assert.Contains(t, resp.Text, "Which industry")
	assert.Equal(t, industryPromptSuggestions, resp.Suggestions)
}

func TestRespond_InsightsSelectVariantFromQuestion(t *testing.T) {
	r := newTestResponder()
	entities := []entity.Entity{{Type: entity.TypeIndustry, Value: "technology", Confidence: 0.9}}

	def := r.Respond("tell me about the technology sector", intentOf(intent.IntentIndustryInsights, 0.9), entities, contextstore.Context{})
	bench := r.Respond("what is typical for technology companies", intentOf(intent.IntentIndustryInsights, 0.9), entities, contextstore.Context{})
	trends := r.Respond("what are the trends in technology", intentOf(intent.IntentIndustryInsights, 0.9), entities, contextstore.Context{})

	assert.Equal(t, "", def.Data["questionType"])
	assert.Equal(t, "benchmark", bench.Data["questionType"])
	assert.Equal(t, "trends", trends.Data["questionType"])
	assert.NotEqual(t, def.Text, bench.Text)
	assert.NotEqual(t, def.Text, trends.Text)
	assert.NotEmpty(t, def.Suggestions)
}

func TestRespond_ComplianceWithRegion(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("does CSRD apply in the EU?", intentOf(intent.IntentComplianceInfo, 0.9), nil, contextstore.Context{})

	assert.Equal(t, "csrd", resp.Data["standard"])
	assert.Equal(t, "eu", resp.Data["region"])
	assert.Contains(t, resp.Text, "financial year 2024")
}

func TestRespond_ComplianceUnknownStandard(t *testing.T) {
	r := newTestResponder()

	resp := r.Respond("what reporting rules exist?", intentOf(intent.IntentComplianceInfo, 0.7), nil, contextstore.Context{})

	assert.Equal(t, "", resp.Data["standard"])
	assert.Contains(t, resp.Text, "GHG Protocol")
	assert.Contains(t, resp.Suggestions, "Tell me about the GHG Protocol")
}

// ==========================
// Helpers
// ==========================

func TestRegionFrom(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{text: "we operate in the US", want: "us"},
		{text: "our United Kingdom offices", want: "uk"},
		{text: "does this apply in europe?", want: "eu"},
		{text: "because we must", want: ""},
		{text: "just a question", want: ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, regionFrom(tt.text), "text %q", tt.text)
	}
}

func TestJoinPhrases(t *testing.T) {
	assert.Equal(t, "", joinPhrases(nil))
	assert.Equal(t, "waste (kg)", joinPhrases([]string{"waste"}))
	assert.Equal(t, "fuel use (liters) and waste (kg)", joinPhrases([]string{"fuel", "waste"}))
}
