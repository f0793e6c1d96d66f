package models

// ProjectionRequest asks for an emissions projection. GrowthRate and
// TargetReduction are pointers so "not set" is distinguishable from zero;
// an absent growth rate falls back to the service default, an absent target
// skips the reduction path.
type ProjectionRequest struct {
	BaselineKgCO2e  float64  `json:"baselineKgCo2e"`
	Years           int      `json:"years"`
	GrowthRate      *float64 `json:"growthRate,omitempty"`
	TargetReduction *float64 `json:"targetReduction,omitempty"`
}

// YearProjection is one year on a projected path. Year 0 is the baseline.
type YearProjection struct {
	Year   int     `json:"year"`
	KgCO2e float64 `json:"kgCo2e"`
}

// ProjectionResponse holds the business-as-usual trend and, when a target
// was given, the path that reaches it.
type ProjectionResponse struct {
	GrowthRate    float64          `json:"growthRate"`
	Trend         []YearProjection `json:"trend"`
	ReductionPath []YearProjection `json:"reductionPath,omitempty"`
}
