// Package schemas holds the request schemas for the public API operations
// and validates incoming payloads against them. The built-in registry can be
// replaced by a JSON file at startup.
package schemas

// API operation ids.
const (
	OpChat       = "chat"
	OpCalculate  = "calculate"
	OpProjection = "projection"
)

type Registry struct {
	Version     string      `json:"version"`
	LastUpdated string      `json:"lastUpdated"`
	Operations  []Operation `json:"operations"`
}

type Operation struct {
	ID            string                 `json:"id"`
	DisplayName   string                 `json:"displayName"`
	Description   string                 `json:"description"`
	RequestSchema map[string]interface{} `json:"requestSchema"`
}

// ValidationResult reports the outcome of validating one payload.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// DefaultRegistry returns the built-in schemas the server ships with.
func DefaultRegistry() *Registry {
	return &Registry{
		Version:     "1.0.0",
		LastUpdated: "2025-06-01",
		Operations: []Operation{
			{
				ID:          OpChat,
				DisplayName: "Chat Message",
				Description: "One user message to the assistant",
				RequestSchema: map[string]interface{}{
					"type":                 "object",
					"required":             []interface{}{"message"},
					"additionalProperties": false,
					"properties": map[string]interface{}{
						"sessionId": map[string]interface{}{"type": "string", "maxLength": 128},
						"message":   map[string]interface{}{"type": "string", "minLength": 1, "maxLength": 2000},
					},
				},
			},
			{
				ID:          OpCalculate,
				DisplayName: "Carbon Calculation",
				Description: "One period of activity data to convert into CO2e",
				RequestSchema: map[string]interface{}{
					"type":                 "object",
					"additionalProperties": false,
					"properties": map[string]interface{}{
						"sessionId":      map[string]interface{}{"type": "string", "maxLength": 128},
						"electricityKwh": map[string]interface{}{"type": "number", "minimum": 0},
						"fuelLiters":     map[string]interface{}{"type": "number", "minimum": 0},
						"travelKm":       map[string]interface{}{"type": "number", "minimum": 0},
						"wasteKg":        map[string]interface{}{"type": "number", "minimum": 0},
						"employees":      map[string]interface{}{"type": "number", "minimum": 0},
						"industry":       map[string]interface{}{"type": "string", "maxLength": 64},
					},
				},
			},
			{
				ID:          OpProjection,
				DisplayName: "Emissions Projection",
				Description: "Project a baseline footprint over the coming years",
				RequestSchema: map[string]interface{}{
					"type":                 "object",
					"required":             []interface{}{"baselineKgCo2e", "years"},
					"additionalProperties": false,
					"properties": map[string]interface{}{
						"baselineKgCo2e":  map[string]interface{}{"type": "number", "minimum": 0},
						"years":           map[string]interface{}{"type": "integer", "minimum": 1, "maximum": 30},
						"growthRate":      map[string]interface{}{"type": "number", "minimum": -1, "maximum": 1},
						"targetReduction": map[string]interface{}{"type": "number", "minimum": 0, "maximum": 1},
					},
				},
			},
		},
	}
}
