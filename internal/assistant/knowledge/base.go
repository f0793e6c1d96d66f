// Package knowledge serves the assistant's static domain content: concept
// explanations, reduction recommendations, industry insights, and compliance
// summaries. Every lookup is a synchronous map read with a fixed fallback,
// so callers never receive an error and never block.
package knowledge

import "strings"

// Concept is a single explainable term.
type Concept struct {
	Text       string   `json:"text"`
	Related    []string `json:"related,omitempty"`
	Confidence float64  `json:"confidence"`
}

// Insight answers an industry question and proposes follow-ups.
type Insight struct {
	Answer            string   `json:"answer"`
	FollowUpQuestions []string `json:"followUpQuestions,omitempty"`
}

// Compliance summarizes a reporting standard, with regional notes folded in.
type Compliance struct {
	Information string `json:"information"`
}

// Base is the static knowledge base. The zero value is usable; NewBase
// exists so wiring reads like the rest of the service.
type Base struct{}

func NewBase() *Base {
	return &Base{}
}

// industryAliases maps extractor spellings onto table keys.
var industryAliases = map[string]string{
	"tech": "technology",
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func canonicalIndustry(industry string) string {
	key := normalizeKey(industry)
	if alias, ok := industryAliases[key]; ok {
		return alias
	}
	return key
}

// ExplainConcept returns the explanation for key, or the fixed fallback
// concept when the key is unknown.
func (b *Base) ExplainConcept(key string) Concept {
	if c, ok := concepts[normalizeKey(key)]; ok {
		return c
	}
	return fallbackConcept
}

// ConceptKeys lists the known concepts in deterministic scan order.
func (b *Base) ConceptKeys() []string {
	return append([]string(nil), conceptKeys...)
}

// MatchConceptKey scans text for a known concept and returns its key, or ""
// when nothing matches. Scan order is fixed so the same text always resolves
// to the same concept.
func (b *Base) MatchConceptKey(text string) string {
	lowered := strings.ToLower(text)
	for _, key := range conceptKeys {
		if strings.Contains(lowered, key) {
			return key
		}
	}
	return ""
}

// Recommendations returns the reduction actions for an industry at a given
// level. Unknown industries use the general list and unknown levels the
// beginner tier. The returned slice is the caller's to keep.
func (b *Base) Recommendations(industry, level string) []string {
	tiers, ok := recommendations[canonicalIndustry(industry)]
	if !ok {
		tiers = recommendations["general"]
	}
	list, ok := tiers[normalizeKey(level)]
	if !ok {
		list = tiers[LevelBeginner]
	}
	return append([]string(nil), list...)
}

// IndustryInsights answers a question about an industry. The question type
// selects a variant ("benchmark", "trends"); empty or unknown types resolve
// to the default variant, and unknown industries to the cross-industry
// fallback.
func (b *Base) IndustryInsights(industry, questionType string) Insight {
	variants, ok := industryInsights[canonicalIndustry(industry)]
	if !ok {
		return defaultInsight
	}
	qt := normalizeKey(questionType)
	if qt == "" {
		qt = "default"
	}
	if insight, ok := variants[qt]; ok {
		return insight
	}
	return variants["default"]
}

// ComplianceInfo summarizes a reporting standard. A known region appends its
// note to the base text; an unknown standard returns the fixed fallback.
func (b *Base) ComplianceInfo(standard, region string) Compliance {
	entry, ok := compliance[normalizeKey(standard)]
	if !ok {
		return fallbackCompliance
	}
	info := entry.base
	if note, ok := entry.regional[normalizeKey(region)]; ok {
		info += " " + note
	}
	return Compliance{Information: info}
}

// MatchStandard scans text for a known compliance standard and returns its
// key, or "" when none is mentioned.
func (b *Base) MatchStandard(text string) string {
	lowered := strings.ToLower(text)
	for _, key := range complianceStandards {
		if strings.Contains(lowered, key) {
			return key
		}
	}
	return ""
}
