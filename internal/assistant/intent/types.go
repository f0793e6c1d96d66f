// Package intent scores utterances against a versioned keyword ruleset.
package intent

// Intent names declared by the default ruleset. The responder dispatches on
// these; a name outside the set resolves to the default handler.
const (
	IntentGreeting         = "greeting"
	IntentGoodbye          = "goodbye"
	IntentCalculateCarbon  = "calculate_carbon"
	IntentExplainConcept   = "explain_concept"
	IntentRecommendations  = "get_recommendations"
	IntentIndustryInsights = "industry_insights"
	IntentComplianceInfo   = "compliance_info"

	// IntentUnknown is never declared as a rule; it is the override result
	// for zero-overlap or low-confidence classifications.
	IntentUnknown = "unknown"
)

// Intent is the result of classifying one utterance.
type Intent struct {
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	// Scores holds the raw keyword-overlap score for every declared rule,
	// kept around for diagnostics and logging.
	Scores map[string]int `json:"scores,omitempty"`
}

// Rule binds one intent name to the keywords that vote for it.
type Rule struct {
	Name     string   `yaml:"name" json:"name"`
	Keywords []string `yaml:"keywords" json:"keywords"`
}

// Ruleset is the classifier's full configuration. Rules are ordered:
// declaration order breaks score ties, earlier wins.
type Ruleset struct {
	Version string `yaml:"version" json:"version"`
	Rules   []Rule `yaml:"rules" json:"rules"`
}

// Word lists for the short-utterance override. An utterance of at most two
// tokens whose first token appears here skips keyword accumulation entirely.
var (
	greetingWords = []string{"hi", "hello", "hey", "greetings", "howdy", "hiya"}
	farewellWords = []string{"bye", "goodbye", "farewell", "later", "cya"}
)

// DefaultRuleset returns the compiled-in ruleset. Callers get a fresh copy
// and may modify it freely before building a classifier.
func DefaultRuleset() Ruleset {
	rs := Ruleset{
		Version: "1.0.0",
		Rules: []Rule{
			{
				Name:     IntentGreeting,
				Keywords: []string{"hello", "hi", "hey", "good morning", "good afternoon", "greetings"},
			},
			{
				Name:     IntentGoodbye,
				Keywords: []string{"bye", "goodbye", "see you", "farewell", "that is all"},
			},
			{
				Name:     IntentCalculateCarbon,
				Keywords: []string{"calculate", "carbon footprint", "emissions", "how much co2", "my footprint", "measure"},
			},
			{
				Name:     IntentExplainConcept,
				Keywords: []string{"what is", "explain", "meaning of", "define", "tell me about"},
			},
			{
				Name:     IntentRecommendations,
				Keywords: []string{"recommend", "reduce", "how can i lower", "suggestions", "tips", "improve"},
			},
			{
				Name:     IntentIndustryInsights,
				Keywords: []string{"industry", "sector", "benchmark", "companies like", "typical for"},
			},
			{
				Name:     IntentComplianceInfo,
				Keywords: []string{"compliance", "regulation", "reporting requirements", "ghg protocol", "csrd", "iso 14064"},
			},
		},
	}
	return rs.clone()
}
