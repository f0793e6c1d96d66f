package carbon

import (
	"strconv"
	"strings"

	"carbon-assistant/internal/assistant/entity"
)

// entityCategories maps extracted entity types onto breakdown categories.
// Non-activity entities (industry, timeframe, percentage) have no mapping.
var entityCategories = map[entity.Type]string{
	entity.TypeEnergy:    CategoryElectricity,
	entity.TypeFuel:      CategoryFuel,
	entity.TypeTravel:    CategoryTravel,
	entity.TypeWaste:     CategoryWaste,
	entity.TypeEmployees: CategoryEmployees,
}

// InputFromEntities builds a calculation input from extracted entities and
// reports which categories were supplied and which are still missing, both
// in category order. Values that do not parse as numbers are treated as
// missing; the first entity per category wins.
func InputFromEntities(entities []entity.Entity) (Input, []string, []string) {
	var in Input
	seen := make(map[string]bool, len(entityCategories))

	for _, ent := range entities {
		category, ok := entityCategories[ent.Type]
		if !ok || seen[category] {
			continue
		}
		value, err := parseAmount(ent.Value)
		if err != nil {
			continue
		}
		seen[category] = true
		switch category {
		case CategoryElectricity:
			in.ElectricityKWh = value
		case CategoryFuel:
			in.FuelLiters = value
		case CategoryTravel:
			in.TravelKM = value
		case CategoryWaste:
			in.WasteKG = value
		case CategoryEmployees:
			in.Employees = value
		}
	}

	supplied := make([]string, 0, len(seen))
	missing := make([]string, 0, len(categoryOrder)-len(seen))
	for _, category := range categoryOrder {
		if seen[category] {
			supplied = append(supplied, category)
		} else {
			missing = append(missing, category)
		}
	}
	return in, supplied, missing
}

// parseAmount reads numbers the way people type them, with grouping commas.
func parseAmount(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	return strconv.ParseFloat(cleaned, 64)
}
