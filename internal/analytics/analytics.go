// Package analytics projects footprints over time and compares them against
// industry intensity averages. All functions are pure math over their
// inputs.
package analytics

import "math"

// DefaultGrowthRate is the yearly emission growth assumed when the caller
// does not supply one.
const DefaultGrowthRate = 0.02

// Benchmark standings.
const (
	StandingBelowAverage = "below_average"
	StandingAverage      = "average"
	StandingAboveAverage = "above_average"
	StandingUnknown      = "unknown"
)

// standingBand is the relative distance from the industry average still
// counted as average.
const standingBand = 0.15

// Projection is one year on an emissions path. Year 0 is the baseline.
type Projection struct {
	Year   int     `json:"year"`
	KgCO2e float64 `json:"kgCo2e"`
}

// BenchmarkResult compares a footprint against the industry average on a
// per-employee basis.
type BenchmarkResult struct {
	Industry              string  `json:"industry"`
	IndustryKgPerEmployee float64 `json:"industryKgPerEmployee"`
	YourKgPerEmployee     float64 `json:"yourKgPerEmployee"`
	DeltaPct              float64 `json:"deltaPct"`
	Standing              string  `json:"standing"`
}

// industryIntensity holds average kg CO2e per employee per year.
var industryIntensity = map[string]float64{
	"technology":     3000,
	"finance":        2500,
	"retail":         4500,
	"healthcare":     5000,
	"hospitality":    6000,
	"manufacturing":  8000,
	"construction":   9000,
	"agriculture":    12000,
	"transportation": 15000,
}

const generalIntensity = 6000.0

// Trend projects a baseline footprint forward with compound yearly growth.
// The result always starts with the baseline at year 0; negative baselines
// count as zero and non-positive year counts return just the baseline.
func Trend(baselineKg float64, years int, growthRate float64) []Projection {
	if baselineKg < 0 {
		baselineKg = 0
	}
	if years < 0 {
		years = 0
	}

	path := make([]Projection, 0, years+1)
	current := baselineKg
	path = append(path, Projection{Year: 0, KgCO2e: round2(current)})
	for year := 1; year <= years; year++ {
		current *= 1 + growthRate
		if current < 0 {
			current = 0
		}
		path = append(path, Projection{Year: year, KgCO2e: round2(current)})
	}
	return path
}

// ReductionPath computes the yearly emissions that hit a target reduction by
// the final year, applying the same relative cut every year. The target is a
// fraction: 0.3 means 30% below baseline at the end.
func ReductionPath(baselineKg float64, targetReduction float64, years int) []Projection {
	if baselineKg < 0 {
		baselineKg = 0
	}
	if targetReduction < 0 {
		targetReduction = 0
	}
	if targetReduction > 1 {
		targetReduction = 1
	}
	if years < 1 {
		years = 1
	}

	yearlyFactor := math.Pow(1-targetReduction, 1/float64(years))

	path := make([]Projection, 0, years+1)
	current := baselineKg
	path = append(path, Projection{Year: 0, KgCO2e: round2(current)})
	for year := 1; year <= years; year++ {
		current *= yearlyFactor
		path = append(path, Projection{Year: year, KgCO2e: round2(current)})
	}
	return path
}

// Benchmark puts a footprint next to the industry average per employee.
// Unknown industries compare against a cross-industry figure; without an
// employee count there is nothing to compare and the standing is unknown.
func Benchmark(industry string, totalKg, employees float64) BenchmarkResult {
	avg, ok := industryIntensity[industry]
	if !ok {
		avg = generalIntensity
	}
	result := BenchmarkResult{
		Industry:              industry,
		IndustryKgPerEmployee: avg,
		Standing:              StandingUnknown,
	}

	if employees <= 0 || totalKg < 0 {
		return result
	}

	perEmployee := totalKg / employees
	delta := (perEmployee - avg) / avg

	result.YourKgPerEmployee = round2(perEmployee)
	result.DeltaPct = round2(delta * 100)
	switch {
	case delta < -standingBand:
		result.Standing = StandingBelowAverage
	case delta > standingBand:
		result.Standing = StandingAboveAverage
	default:
		result.Standing = StandingAverage
	}
	return result
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
