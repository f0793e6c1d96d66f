// Package respond turns a classified message into the reply the user sees.
// One handler per intent; everything unrecognized lands in the fallback.
package respond

import (
	"fmt"
	"math/rand"
	"strings"

	"carbon-assistant/internal/assistant/contextstore"
	"carbon-assistant/internal/assistant/entity"
	"carbon-assistant/internal/assistant/intent"
	"carbon-assistant/internal/assistant/knowledge"
	"carbon-assistant/internal/carbon"
	"carbon-assistant/internal/common/metrics"
)

// FallbackConfidence is the fixed confidence of responses that did not go
// through a real handler.
const FallbackConfidence = 0.5

// Response is the assistant's reply. Confidence mirrors the classifier's
// confidence for handled intents and FallbackConfidence otherwise.
type Response struct {
	Text        string                 `json:"text"`
	Suggestions []string               `json:"suggestions,omitempty"`
	Confidence  float64                `json:"confidence"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// Responder dispatches intents to handlers over the knowledge base and the
// carbon engine. It holds no per-session state and is safe for concurrent
// use.
type Responder struct {
	kb     *knowledge.Base
	engine *carbon.Engine
	pick   func(n int) int
}

func NewResponder(kb *knowledge.Base, engine *carbon.Engine) *Responder {
	return &Responder{
		kb:     kb,
		engine: engine,
		pick:   rand.Intn,
	}
}

// Respond builds the reply for one message. The utterance is needed beyond
// the extracted entities because concept and standard selection scan the raw
// text.
func (r *Responder) Respond(utterance string, in intent.Intent, entities []entity.Entity, sessionCtx contextstore.Context) Response {
	switch in.Name {
	case intent.IntentGreeting:
		return Response{
			Text:        r.pickFrom(greetingTemplates),
			Suggestions: append([]string(nil), starterSuggestions...),
			Confidence:  in.Confidence,
		}
	case intent.IntentGoodbye:
		return Response{
			Text:       r.pickFrom(goodbyeTemplates),
			Confidence: in.Confidence,
		}
	case intent.IntentCalculateCarbon:
		return r.calculate(in, entities)
	case intent.IntentExplainConcept:
		return r.explain(utterance, in)
	case intent.IntentRecommendations:
		return r.recommend(in, entities, sessionCtx)
	case intent.IntentIndustryInsights:
		return r.insights(utterance, in, entities, sessionCtx)
	case intent.IntentComplianceInfo:
		return r.compliance(utterance, in)
	default:
		return r.fallback()
	}
}

// Fallback is the reply used when responding itself failed.
func Fallback() Response {
	return Response{
		Text:        fallbackTemplates[rand.Intn(len(fallbackTemplates))],
		Suggestions: append([]string(nil), starterSuggestions...),
		Confidence:  FallbackConfidence,
	}
}

func (r *Responder) fallback() Response {
	return Response{
		Text:        r.pickFrom(fallbackTemplates),
		Suggestions: append([]string(nil), starterSuggestions...),
		Confidence:  FallbackConfidence,
	}
}

func (r *Responder) calculate(in intent.Intent, entities []entity.Entity) Response {
	input, supplied, missing := carbon.InputFromEntities(entities)

	if len(supplied) == 0 {
		return Response{
			Text: "I can estimate your footprint from activity data. Tell me things like your electricity use in kWh, fuel in liters, travel in km, waste in kg, or employee count.",
			Suggestions: append([]string(nil), missingDataSuggestions...),
			Confidence:  in.Confidence,
			Data:        map[string]interface{}{"missing": missing},
		}
	}

	result := r.engine.Calculate(input)
	metrics.CalculationsPerformed.WithLabelValues(result.Rating).Inc()

	var text strings.Builder
	fmt.Fprintf(&text, "Based on what you shared, your footprint comes to about %.0f kg CO2e, a %s footprint.", result.TotalKgCO2e, result.Rating)
	if largest := carbon.LargestContributor(result); largest != "" {
		fmt.Fprintf(&text, " Your biggest source is %s at %.0f%% of the total.", largest, result.Shares[largest]*100)
	}
	if len(missing) > 0 {
		fmt.Fprintf(&text, " For a fuller picture, also tell me your %s.", joinPhrases(missing))
	}

	return Response{
		Text:        text.String(),
		Suggestions: append([]string(nil), afterCalculationSuggestions...),
		Confidence:  in.Confidence,
		Data: map[string]interface{}{
			"result":   result,
			"supplied": supplied,
			"missing":  missing,
		},
	}
}

func (r *Responder) explain(utterance string, in intent.Intent) Response {
	key := r.kb.MatchConceptKey(utterance)
	concept := r.kb.ExplainConcept(key)

	suggestions := make([]string, 0, len(concept.Related))
	for _, related := range concept.Related {
		suggestions = append(suggestions, "What is "+related+"?")
	}

	return Response{
		Text:        concept.Text,
		Suggestions: suggestions,
		Confidence:  in.Confidence,
		Data: map[string]interface{}{
			"concept":           key,
			"related":           concept.Related,
			"conceptConfidence": concept.Confidence,
		},
	}
}

func (r *Responder) recommend(in intent.Intent, entities []entity.Entity, sessionCtx contextstore.Context) Response {
	industry := industryFrom(entities, sessionCtx)
	level := recommendationLevel(sessionCtx)
	recs := r.kb.Recommendations(industry, level)

	var text strings.Builder
	switch {
	case sessionCtx.LastAction == intent.IntentCalculateCarbon:
		text.WriteString("Building on your calculation, here is where I would start:")
	case industry != "":
		fmt.Fprintf(&text, "Here are %s actions for the %s sector:", level, industry)
	default:
		fmt.Fprintf(&text, "Here are some %s actions to reduce your footprint:", level)
	}
	for i, rec := range recs {
		fmt.Fprintf(&text, "\n%d. %s", i+1, rec)
	}

	suggestions := []string{"Calculate my carbon footprint"}
	if level != knowledge.LevelAdvanced {
		suggestions = append(suggestions, "Ask again for more advanced actions")
	}

	return Response{
		Text:        text.String(),
		Suggestions: suggestions,
		Confidence:  in.Confidence,
		Data: map[string]interface{}{
			"industry":        industry,
			"level":           level,
			"recommendations": recs,
		},
	}
}

func (r *Responder) insights(utterance string, in intent.Intent, entities []entity.Entity, sessionCtx contextstore.Context) Response {
	industry := industryFrom(entities, sessionCtx)
	if industry == "" {
		return Response{
			Text:        "Which industry are you in? I have insights for sectors like technology, manufacturing, retail, and transportation.",
			Suggestions: append([]string(nil), industryPromptSuggestions...),
			Confidence:  in.Confidence,
		}
	}

	questionType := questionTypeFrom(utterance)
	insight := r.kb.IndustryInsights(industry, questionType)

	return Response{
		Text:        insight.Answer,
		Suggestions: append([]string(nil), insight.FollowUpQuestions...),
		Confidence:  in.Confidence,
		Data: map[string]interface{}{
			"industry":     industry,
			"questionType": questionType,
		},
	}
}

func (r *Responder) compliance(utterance string, in intent.Intent) Response {
	standard := r.kb.MatchStandard(utterance)
	region := regionFrom(utterance)
	info := r.kb.ComplianceInfo(standard, region)

	suggestions := []string{"How do I start measuring?", "Give me reduction recommendations"}
	if standard == "" {
		suggestions = []string{"Tell me about the GHG Protocol", "Does CSRD apply to my company?"}
	}

	return Response{
		Text:        info.Information,
		Suggestions: suggestions,
		Confidence:  in.Confidence,
		Data: map[string]interface{}{
			"standard": standard,
			"region":   region,
		},
	}
}

func (r *Responder) pickFrom(templates []string) string {
	return templates[r.pick(len(templates))]
}

// industryFrom prefers an industry entity from the current message, then the
// most recent one remembered in the session.
func industryFrom(entities []entity.Entity, sessionCtx contextstore.Context) string {
	for _, ent := range entities {
		if ent.Type == entity.TypeIndustry {
			return ent.Value
		}
	}
	for i := len(sessionCtx.Entities) - 1; i >= 0; i-- {
		if sessionCtx.Entities[i].Type == string(entity.TypeIndustry) {
			return sessionCtx.Entities[i].Value
		}
	}
	return ""
}

// recommendationLevel advances the tier as the session keeps asking: first
// request beginner, second intermediate, later ones advanced.
func recommendationLevel(sessionCtx contextstore.Context) string {
	var prior int
	for _, rec := range sessionCtx.Intents {
		if rec.Name == intent.IntentRecommendations {
			prior++
		}
	}
	switch {
	case prior >= 2:
		return knowledge.LevelAdvanced
	case prior == 1:
		return knowledge.LevelIntermediate
	default:
		return knowledge.LevelBeginner
	}
}

func questionTypeFrom(utterance string) string {
	lowered := strings.ToLower(utterance)
	switch {
	case strings.Contains(lowered, "trend"):
		return "trends"
	case strings.Contains(lowered, "benchmark"), strings.Contains(lowered, "average"), strings.Contains(lowered, "typical"), strings.Contains(lowered, "compare"):
		return "benchmark"
	default:
		return ""
	}
}

var regionTokens = map[string]string{
	"eu":       "eu",
	"europe":   "eu",
	"european": "eu",
	"uk":       "uk",
	"britain":  "uk",
	"us":       "us",
	"usa":      "us",
	"america":  "us",
	"american": "us",
}

// regionFrom spots a region mention. Tokens are matched whole so "us" does
// not fire inside ordinary words.
func regionFrom(utterance string) string {
	lowered := strings.ToLower(utterance)
	if strings.Contains(lowered, "united kingdom") {
		return "uk"
	}
	if strings.Contains(lowered, "united states") {
		return "us"
	}
	for _, token := range strings.Fields(lowered) {
		token = strings.Trim(token, ".,!?;:")
		if region, ok := regionTokens[token]; ok {
			return region
		}
	}
	return ""
}

func joinPhrases(categories []string) string {
	phrases := make([]string, 0, len(categories))
	for _, category := range categories {
		if phrase, ok := categoryPhrases[category]; ok {
			phrases = append(phrases, phrase)
		} else {
			phrases = append(phrases, category)
		}
	}
	switch len(phrases) {
	case 0:
		return ""
	case 1:
		return phrases[0]
	default:
		return strings.Join(phrases[:len(phrases)-1], ", ") + " and " + phrases[len(phrases)-1]
	}
}
