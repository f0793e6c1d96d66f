package models

// CalculationRequest carries one period of activity data. Industry and
// employees additionally unlock the benchmark section of the response.
type CalculationRequest struct {
	SessionID      string  `json:"sessionId,omitempty"`
	ElectricityKWh float64 `json:"electricityKwh,omitempty"`
	FuelLiters     float64 `json:"fuelLiters,omitempty"`
	TravelKM       float64 `json:"travelKm,omitempty"`
	WasteKG        float64 `json:"wasteKg,omitempty"`
	Employees      float64 `json:"employees,omitempty"`
	Industry       string  `json:"industry,omitempty"`
}

// IndustryBenchmark relates a computed footprint to the industry average.
type IndustryBenchmark struct {
	Industry              string  `json:"industry"`
	IndustryKgPerEmployee float64 `json:"industryKgPerEmployee"`
	YourKgPerEmployee     float64 `json:"yourKgPerEmployee"`
	DeltaPct              float64 `json:"deltaPct"`
	Standing              string  `json:"standing"`
}

// CalculationResponse is a computed footprint with targeted advice.
type CalculationResponse struct {
	TotalKgCO2e     float64            `json:"totalKgCo2e"`
	Breakdown       map[string]float64 `json:"breakdown"`
	Shares          map[string]float64 `json:"shares"`
	Rating          string             `json:"rating"`
	Recommendations []string           `json:"recommendations"`
	Benchmark       *IndustryBenchmark `json:"benchmark,omitempty"`
}
