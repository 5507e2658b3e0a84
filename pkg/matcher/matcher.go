// Package matcher ranks recipes by how much of their required ingredient list
// a pantry already covers. It performs no I/O and keeps no state, so it is safe
// to call from any number of goroutines as long as the catalog is not mutated.
package matcher

import (
	"sort"
	"strings"

	"github.com/korjavin/smartpantry/pkg/models"
)

// DefaultTopN is the number of suggestions returned when the caller has no preference
const DefaultTopN = 3

// Normalize returns the canonical form used to compare ingredient names
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// NormalizeSet normalizes names into a set, dropping names that are blank after trimming
func NormalizeSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		if n := Normalize(name); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// RankRecipes scores every recipe in the catalog against the pantry and returns
// at most topN results, best coverage first.
//
// Recipes with no required ingredients and recipes sharing nothing with the
// pantry are left out. Recipes with equal scores keep their catalog order.
// A topN of zero or less yields an empty result.
func RankRecipes(pantry []string, catalog []models.Recipe, topN int) []models.MatchResult {
	if topN <= 0 {
		return []models.MatchResult{}
	}

	have := NormalizeSet(pantry)

	matches := make([]models.MatchResult, 0)
	for _, recipe := range catalog {
		required := NormalizeSet(recipe.Ingredients)
		if len(required) == 0 {
			continue
		}

		common := make([]string, 0, len(required))
		missing := make([]string, 0, len(required))
		for ingredient := range required {
			if _, ok := have[ingredient]; ok {
				common = append(common, ingredient)
			} else {
				missing = append(missing, ingredient)
			}
		}

		if len(common) == 0 {
			continue
		}

		sort.Strings(common)
		sort.Strings(missing)

		matches = append(matches, models.MatchResult{
			RecipeID:           recipe.ID,
			Title:              recipe.Title,
			Score:              float64(len(common)) / float64(len(required)),
			HaveIngredients:    common,
			MissingIngredients: missing,
			Steps:              recipe.Steps,
			CookingTime:        recipe.CookingTime,
			Difficulty:         recipe.Difficulty,
			Tags:               append([]string(nil), recipe.Tags...),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > topN {
		matches = matches[:topN]
	}
	return matches
}
