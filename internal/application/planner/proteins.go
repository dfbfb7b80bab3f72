package planner

import (
	"strings"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// proteinGroups classify a recipe by its dominant protein for the
// anti-monotony check. Tags are consulted first; the ingredient text is the
// fallback signal. The group label itself is what matters, not the exact
// ingredient, so "salmon" and "tuna" both map to fish.
var proteinGroups = []struct {
	label string
	terms *termMatcher
}{
	{"chicken", newTermMatcher("chicken", "turkey", "duck", "poultry")},
	{"beef", newTermMatcher("beef", "steak", "veal", "ground beef")},
	{"pork", newTermMatcher("pork", "bacon", "ham", "sausage", "prosciutto")},
	{"lamb", newTermMatcher("lamb", "mutton")},
	{"fish", newTermMatcher(concat(seafoodTerms)...)},
	{"eggs", newTermMatcher("egg", "eggs", "egg whites")},
	{"tofu", newTermMatcher("tofu", "tempeh", "seitan", "edamame")},
	{"legumes", newTermMatcher("lentils", "chickpeas", "beans", "black beans", "kidney beans")},
}

// primaryProteinTag returns the recipe's protein group label, or "" when no
// group matches. Back-to-back slots sharing a non-empty label are avoided.
func primaryProteinTag(r *recipe.Recipe) string {
	for _, tag := range r.Tags() {
		tagTokens := tokenize(strings.TrimSpace(tag))
		for _, g := range proteinGroups {
			if g.terms.Matches(tagTokens) {
				return g.label
			}
		}
	}

	tokens := tokenize(r.IngredientText())
	for _, g := range proteinGroups {
		if g.terms.Matches(tokens) {
			return g.label
		}
	}
	return ""
}
