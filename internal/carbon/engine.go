// Package carbon converts activity data into CO2e estimates. Factors are
// period-agnostic: feed it monthly numbers and the result is monthly.
package carbon

import "math"

// Emission factors in kg CO2e per unit of activity.
const (
	ElectricityFactor = 0.45  // per kWh
	FuelFactor        = 2.68  // per liter
	TravelFactor      = 0.21  // per km
	WasteFactor       = 0.70  // per kg
	EmployeeFactor    = 180.0 // per employee per period
)

// Rating thresholds in kg CO2e.
const (
	ratingMediumFloor = 5000.0
	ratingHighFloor   = 20000.0
)

const (
	RatingLow    = "low"
	RatingMedium = "medium"
	RatingHigh   = "high"
)

// Breakdown categories, also used as JSON keys.
const (
	CategoryElectricity = "electricity"
	CategoryFuel        = "fuel"
	CategoryTravel      = "travel"
	CategoryWaste       = "waste"
	CategoryEmployees   = "employees"
)

// categoryOrder fixes iteration order wherever it matters, including the
// tie-break for the largest contributor.
var categoryOrder = []string{
	CategoryElectricity,
	CategoryFuel,
	CategoryTravel,
	CategoryWaste,
	CategoryEmployees,
}

// Input is one period of activity data. Units follow the field names.
type Input struct {
	ElectricityKWh float64 `json:"electricityKwh"`
	FuelLiters     float64 `json:"fuelLiters"`
	TravelKM       float64 `json:"travelKm"`
	WasteKG        float64 `json:"wasteKg"`
	Employees      float64 `json:"employees"`
}

// Result is a computed footprint. Breakdown and Shares carry one entry per
// category; Shares are fractions of the total and sum to 1 unless the total
// is zero, in which case every share is 0.
type Result struct {
	TotalKgCO2e float64            `json:"totalKgCo2e"`
	Breakdown   map[string]float64 `json:"breakdown"`
	Shares      map[string]float64 `json:"shares"`
	Rating      string             `json:"rating"`
}

// Engine computes footprints with the package's fixed factors.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Calculate turns activity data into a footprint. Negative inputs count as
// zero rather than producing negative emissions.
func (e *Engine) Calculate(in Input) Result {
	breakdown := map[string]float64{
		CategoryElectricity: round2(clamp(in.ElectricityKWh) * ElectricityFactor),
		CategoryFuel:        round2(clamp(in.FuelLiters) * FuelFactor),
		CategoryTravel:      round2(clamp(in.TravelKM) * TravelFactor),
		CategoryWaste:       round2(clamp(in.WasteKG) * WasteFactor),
		CategoryEmployees:   round2(clamp(in.Employees) * EmployeeFactor),
	}

	var total float64
	for _, category := range categoryOrder {
		total += breakdown[category]
	}
	total = round2(total)

	shares := make(map[string]float64, len(breakdown))
	for _, category := range categoryOrder {
		if total > 0 {
			shares[category] = round4(breakdown[category] / total)
		} else {
			shares[category] = 0
		}
	}

	return Result{
		TotalKgCO2e: total,
		Breakdown:   breakdown,
		Shares:      shares,
		Rating:      ratingFor(total),
	}
}

func ratingFor(totalKg float64) string {
	switch {
	case totalKg < ratingMediumFloor:
		return RatingLow
	case totalKg < ratingHighFloor:
		return RatingMedium
	default:
		return RatingHigh
	}
}

// LargestContributor names the category with the biggest share of the
// result, breaking ties in category order. An all-zero result returns "".
func LargestContributor(r Result) string {
	var (
		largest string
		best    float64
	)
	for _, category := range categoryOrder {
		if v := r.Breakdown[category]; v > best {
			largest = category
			best = v
		}
	}
	return largest
}

// contributorActions holds the targeted advice per dominant category.
var contributorActions = map[string][]string{
	CategoryElectricity: {
		"Switch to a renewable electricity tariff",
		"Upgrade to LED lighting and efficient HVAC",
		"Enable aggressive power management on equipment",
	},
	CategoryFuel: {
		"Transition fleet vehicles to electric or hybrid",
		"Optimize routes to cut fuel consumption",
		"Train drivers in fuel-efficient driving",
	},
	CategoryTravel: {
		"Replace short-haul flights with rail or video calls",
		"Introduce a travel approval policy with carbon budgets",
		"Consolidate trips and favor direct routes",
	},
	CategoryWaste: {
		"Run a waste audit and expand recycling streams",
		"Reduce single-use materials in operations",
		"Compost organic waste instead of landfilling it",
	},
	CategoryEmployees: {
		"Support remote work to cut commuting emissions",
		"Subsidize public transport or cycling to work",
		"Green the office: efficient space, less floor area per head",
	},
}

var baselineActions = []string{
	"Start measuring electricity, fuel, travel, and waste monthly",
	"Set a baseline period so future reductions are provable",
	"Pick the largest emission source and target it first",
}

// Recommendations returns actions aimed at the result's largest contributor,
// or baseline advice when there is nothing to target yet.
func (e *Engine) Recommendations(r Result) []string {
	largest := LargestContributor(r)
	actions, ok := contributorActions[largest]
	if !ok {
		actions = baselineActions
	}
	return append([]string(nil), actions...)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
