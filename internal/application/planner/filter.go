package planner

import (
	"strings"

	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// EligibilityFilter reduces the full recipe set to those matching meal-type,
// dietary, health-goal and minimum-score constraints. Diets are OR'd among
// themselves, goals are OR'd among themselves, and the four predicate groups
// are AND'd.
type EligibilityFilter struct {
	scorer *scoreResolver
	logger *zap.Logger
}

// NewEligibilityFilter creates a filter sharing the engine-wide score resolver
func NewEligibilityFilter(scorer *scoreResolver, logger *zap.Logger) *EligibilityFilter {
	return &EligibilityFilter{
		scorer: scorer,
		logger: logger.Named("eligibility-filter"),
	}
}

// Eligible returns the subset of recipes satisfying every constraint group
func (f *EligibilityFilter) Eligible(recipes []recipe.ClassifiedRecipe, prefs mealplan.PreferenceContext) []recipe.ClassifiedRecipe {
	out := make([]recipe.ClassifiedRecipe, 0, len(recipes))
	for _, c := range recipes {
		if f.IsEligible(c, prefs) {
			out = append(out, c)
		}
	}

	f.logger.Debug("filtered recipe collection",
		zap.Int("total", len(recipes)),
		zap.Int("eligible", len(out)),
	)
	return out
}

// IsEligible applies the full predicate to one recipe
func (f *EligibilityFilter) IsEligible(c recipe.ClassifiedRecipe, prefs mealplan.PreferenceContext) bool {
	return f.matchesMealTypes(c, prefs.EffectiveMealTypes()) &&
		matchesAnyDiet(c.Recipe(), prefs.Diets) &&
		f.matchesAnyGoal(c.Recipe(), prefs) &&
		f.meetsMinScore(c.Recipe(), prefs.MinScore)
}

// IsDietEligible applies the relaxed predicate used when gap-fill results
// would otherwise be filtered to nothing: meal-type and dietary compatibility
// only, with goal and score constraints dropped.
func (f *EligibilityFilter) IsDietEligible(c recipe.ClassifiedRecipe, prefs mealplan.PreferenceContext) bool {
	return f.matchesMealTypes(c, prefs.EffectiveMealTypes()) &&
		matchesAnyDiet(c.Recipe(), prefs.Diets)
}

// mealTypeIndicatingTags are category tags that signal a recipe belongs to a
// particular slot. A recipe carrying none of these is treated as neutral and
// passes the meal-type check.
var mealTypeIndicatingTags = map[string]bool{
	"breakfast": true, "brunch": true, "lunch": true, "dinner": true,
	"snack": true, "dessert": true, "main": true, "main course": true,
	"main dish": true, "soup": true, "salad": true, "side": true,
	"side dish": true, "appetizer": true, "starter": true,
}

// genericMainTags expand lunch and dinner compatibility beyond exact names
var genericMainTags = []string{"main", "main course", "main dish", "soup", "salad", "side", "side dish"}

func (f *EligibilityFilter) matchesMealTypes(c recipe.ClassifiedRecipe, selected []recipe.MealType) bool {
	if c.MealTypes().Intersects(selected) {
		return true
	}

	expanded := make(map[string]bool, len(selected)+len(genericMainTags))
	for _, t := range selected {
		expanded[string(t)] = true
		if t == recipe.MealTypeLunch || t == recipe.MealTypeDinner {
			for _, g := range genericMainTags {
				expanded[g] = true
			}
		}
	}

	indicating := false
	for _, tag := range c.Recipe().Tags() {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if expanded[normalized] {
			return true
		}
		if mealTypeIndicatingTags[normalized] {
			indicating = true
		}
	}

	// No meal-type-indicating tag at all: neutral, included
	return !indicating
}

// matchesAnyDiet applies OR semantics across the selected preferences
func matchesAnyDiet(r *recipe.Recipe, diets []recipe.Diet) bool {
	if len(diets) == 0 {
		return true
	}
	for _, d := range diets {
		if dietAllows(d, r) {
			return true
		}
	}
	return false
}

// matchesAnyGoal applies OR semantics across the selected goals. A goal is
// satisfied by keyword evidence or by a high effective score; when no goal
// matches, a recipe scoring above the generic floor still passes.
func (f *EligibilityFilter) matchesAnyGoal(r *recipe.Recipe, prefs mealplan.PreferenceContext) bool {
	if len(prefs.Goals) == 0 {
		return true
	}

	score := f.scorer.Effective(r)
	meetsFilter := prefs.MinScore == 0 || score >= prefs.MinScore
	tokens := tokenize(r.IngredientText())

	for _, g := range prefs.Goals {
		rule, ok := goalRules[g]
		if !ok {
			continue
		}
		if meetsFilter && rule.matcher.Count(tokens) >= rule.minMatches {
			return true
		}
		if meetsFilter && score > rule.scoreCeiling {
			return true
		}
	}

	floor := goalScoreFloor
	if prefs.MinScore > floor {
		floor = prefs.MinScore
	}
	return score > floor
}

func (f *EligibilityFilter) meetsMinScore(r *recipe.Recipe, minScore int) bool {
	if minScore == 0 {
		return true
	}
	return f.scorer.Effective(r) >= minScore
}
