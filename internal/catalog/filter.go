package catalog

import (
	"strings"

	"github.com/receitaro/receitaro/internal/models"
	"github.com/receitaro/receitaro/internal/search"
)

// ApplyFilters keeps recipes satisfying every set filter field. Dietary types
// must all be present among the recipe's tags; meal types match when any one
// is present. Unset fields constrain nothing.
func ApplyFilters(recipes []*models.Recipe, f models.SearchFilters) []*models.Recipe {
	if f.Empty() {
		return recipes
	}
	filtered := make([]*models.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if r == nil {
			continue
		}
		if matchesFilters(r, f) {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func matchesFilters(r *models.Recipe, f models.SearchFilters) bool {
	if f.MaxTimeMinutes > 0 && r.PrepTimeMinutes > f.MaxTimeMinutes {
		return false
	}
	if len(f.Difficulty) > 0 && !containsInt(f.Difficulty, r.Difficulty) {
		return false
	}
	if len(f.DietaryTypes) > 0 {
		for _, want := range f.DietaryTypes {
			if !hasTag(r.Tags, want) {
				return false
			}
		}
	}
	if len(f.MealTypes) > 0 {
		found := false
		for _, want := range f.MealTypes {
			if hasTag(r.Tags, want) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// hasTag reports whether any tag matches want after normalization, so that
// "Sem Glúten" satisfies the inferred "sem gluten" dietary type.
func hasTag(tags []string, want string) bool {
	want = search.Normalize(want)
	for _, tag := range tags {
		if strings.Contains(search.Normalize(tag), want) {
			return true
		}
	}
	return false
}

func containsInt(list []int, v int) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}
