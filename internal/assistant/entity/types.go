// Package entity pulls typed values out of raw utterances using a fixed
// regex pattern table.
package entity

// Type identifies what a captured value measures.
type Type string

const (
	TypeEnergy     Type = "energy"
	TypeFuel       Type = "fuel"
	TypeEmployees  Type = "employees"
	TypeTravel     Type = "travel"
	TypeWaste      Type = "waste"
	TypePercentage Type = "percentage"
	TypeIndustry   Type = "industry"
	TypeTimeframe  Type = "timeframe"
)

// Entity is one captured value. Value stays the raw captured string;
// numeric parsing is the consumer's responsibility.
type Entity struct {
	Type       Type    `json:"type"`
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"`
}
