package entity

import "regexp"

// regexConfidence is the fixed confidence attached to every regex capture.
const regexConfidence = 0.9

type pattern struct {
	entityType Type
	re         *regexp.Regexp
}

// defaultPatterns is the extraction table. Order matters: results come back
// in table order, and there is exactly one pattern per entity type. Patterns
// run against the original utterance and carry their own case-insensitivity.
var defaultPatterns = []pattern{
	{TypeEnergy, regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:kwh|kilowatt[- ]?hours?|mwh)`)},
	{TypeFuel, regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:liters?|litres?|gallons?)(?:\s+of)?(?:\s+(?:fuel|diesel|petrol|gasoline))?`)},
	{TypeEmployees, regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s*(?:employees?|staff|workers?|people)`)},
	{TypeTravel, regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:km|kms|kilometers?|kilometres?|miles?)\b`)},
	{TypeWaste, regexp.MustCompile(`(?i)(\d+(?:,\d{3})*(?:\.\d+)?)\s*(?:kg|kilograms?|kilos?|tonnes?|tons?)(?:\s+of)?\s*(?:waste|garbage|trash)`)},
	{TypePercentage, regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:%|percent)`)},
	{TypeIndustry, regexp.MustCompile(`(?i)\b(technology|tech|manufacturing|retail|healthcare|finance|hospitality|construction|agriculture|transportation)\b`)},
	{TypeTimeframe, regexp.MustCompile(`(?i)\b(monthly|yearly|annually|weekly|quarterly|daily|(?:per|last|this)\s+(?:month|year|week|quarter|day))\b`)},
}

// Extractor captures entities from utterances. The zero table is never used;
// construct with NewExtractor.
type Extractor struct {
	patterns []pattern
}

// NewExtractor builds an extractor over the default pattern table.
func NewExtractor() *Extractor {
	return &Extractor{patterns: defaultPatterns}
}

// Extract returns at most one entity per type, in pattern-table order. Only
// the first match per pattern counts; the value is the first capture group.
// Each call returns a fresh slice.
func (e *Extractor) Extract(utterance string) []Entity {
	var out []Entity
	for _, p := range e.patterns {
		m := p.re.FindStringSubmatch(utterance)
		if m == nil {
			continue
		}
		value := m[0]
		if len(m) > 1 {
			value = m[1]
		}
		out = append(out, Entity{
			Type:       p.entityType,
			Value:      value,
			Confidence: regexConfidence,
		})
	}
	return out
}

// Types lists the entity types the extractor can produce, in table order.
func (e *Extractor) Types() []Type {
	types := make([]Type, len(e.patterns))
	for i, p := range e.patterns {
		types[i] = p.entityType
	}
	return types
}
