package models

// SearchFilters holds structured hints inferred from a free-text query.
// A zero field means "no constraint inferred", never "exclude everything".
// Filters are advisory: the caller decides whether to enforce them.
type SearchFilters struct {
	MaxTimeMinutes int      `json:"max_time_minutes,omitempty"`
	Difficulty     []int    `json:"difficulty,omitempty"`
	DietaryTypes   []string `json:"dietary_types,omitempty"`
	MealTypes      []string `json:"meal_types,omitempty"`
}

// Empty reports whether no filter field is set.
func (f SearchFilters) Empty() bool {
	return f.MaxTimeMinutes == 0 &&
		len(f.Difficulty) == 0 &&
		len(f.DietaryTypes) == 0 &&
		len(f.MealTypes) == 0
}
