package planner

import (
	"strings"
	"unicode"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// Dietary and health-goal matching is data-driven: each label owns a small
// declarative rule evaluated by one generic matcher. Matching is
// case-insensitive and word-bounded; hyphenated compounds are single tokens,
// so "chicken-free" never matches the term "chicken", and multi-word phrases
// ("chicken broth") are matched before, and consume, their component words.

// tokenize splits text into lowercase tokens of letters, digits and hyphens
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// termMatcher matches a curated term list against tokenized text
type termMatcher struct {
	// phrases holds each term as its token sequence, longest first
	phrases [][]string
}

func newTermMatcher(terms ...string) *termMatcher {
	phrases := make([][]string, 0, len(terms))
	for _, t := range terms {
		if toks := tokenize(t); len(toks) > 0 {
			phrases = append(phrases, toks)
		}
	}
	// Longest phrases first so compounds win over their component words
	for i := 1; i < len(phrases); i++ {
		for j := i; j > 0 && len(phrases[j]) > len(phrases[j-1]); j-- {
			phrases[j], phrases[j-1] = phrases[j-1], phrases[j]
		}
	}
	return &termMatcher{phrases: phrases}
}

// Count returns how many term occurrences appear in the tokens. A token span
// consumed by a longer phrase is not re-counted by a shorter term.
func (m *termMatcher) Count(tokens []string) int {
	consumed := make([]bool, len(tokens))
	count := 0
	for _, phrase := range m.phrases {
		for i := 0; i+len(phrase) <= len(tokens); i++ {
			if spanMatches(tokens, consumed, phrase, i) {
				for j := i; j < i+len(phrase); j++ {
					consumed[j] = true
				}
				count++
				i += len(phrase) - 1
			}
		}
	}
	return count
}

// Matches reports whether any term occurs in the tokens
func (m *termMatcher) Matches(tokens []string) bool {
	return m.Count(tokens) > 0
}

func spanMatches(tokens []string, consumed []bool, phrase []string, at int) bool {
	for j, word := range phrase {
		if consumed[at+j] || tokens[at+j] != word {
			return false
		}
	}
	return true
}

// dietRule describes one dietary preference: an explicit category tag checked
// first, then an ingredient-text heuristic with thresholds.
type dietRule struct {
	categoryTag string
	positive    *termMatcher
	negative    *termMatcher
	minMatches  int
}

// universalDiets pass every recipe; they restrict when you eat, not what
var universalDiets = map[recipe.Diet]bool{
	recipe.DietClassic:             true,
	recipe.DietFlexitarian:         true,
	recipe.DietIntermittentFasting: true,
}

var landMeatTerms = []string{
	"chicken", "chicken broth", "chicken stock", "beef", "beef broth", "bone broth",
	"pork", "bacon", "ham", "sausage", "lamb", "turkey", "veal", "duck",
	"prosciutto", "pepperoni", "gelatin", "lard",
}

var seafoodTerms = []string{
	"fish", "fish sauce", "salmon", "tuna", "cod", "trout", "sardine", "sardines",
	"anchovy", "anchovies", "shrimp", "prawns", "crab", "lobster", "mussels",
	"clams", "oysters", "scallops",
}

var animalProductTerms = []string{
	"milk", "cheese", "butter", "cream", "heavy cream", "yogurt", "egg", "eggs",
	"honey", "mayonnaise", "ghee", "whey",
}

var dietRules = map[recipe.Diet]dietRule{
	recipe.DietVegan: {
		categoryTag: "vegan",
		negative:    newTermMatcher(concat(landMeatTerms, seafoodTerms, animalProductTerms)...),
	},
	recipe.DietVegetarian: {
		categoryTag: "vegetarian",
		negative:    newTermMatcher(concat(landMeatTerms, seafoodTerms)...),
	},
	recipe.DietPescatarian: {
		categoryTag: "pescatarian",
		negative:    newTermMatcher(landMeatTerms...),
	},
	recipe.DietMediterranean: {
		categoryTag: "mediterranean",
		positive: newTermMatcher(
			"olive oil", "fish", "salmon", "sardines", "chickpeas", "lentils",
			"tomato", "tomatoes", "whole grain", "quinoa", "farro", "feta",
			"yogurt", "walnuts", "almonds", "olives", "eggplant", "zucchini",
		),
		negative:   newTermMatcher("bacon", "sausage", "pepperoni", "lard"),
		minMatches: 2,
	},
}

// dietAllows evaluates one dietary preference against a recipe
func dietAllows(diet recipe.Diet, r *recipe.Recipe) bool {
	if universalDiets[diet] {
		return true
	}
	rule, ok := dietRules[diet]
	if !ok {
		return true
	}
	if rule.categoryTag != "" && hasTag(r, rule.categoryTag) {
		return true
	}

	tokens := tokenize(r.IngredientText())
	if rule.negative != nil && rule.negative.Matches(tokens) {
		return false
	}
	if rule.positive != nil && rule.positive.Count(tokens) < rule.minMatches {
		return false
	}
	return true
}

// goalRule describes one health goal: a keyword heuristic with a threshold
// and a score ceiling above which keywords are unnecessary.
type goalRule struct {
	matcher      *termMatcher
	minMatches   int
	scoreCeiling int
}

// goalScoreFloor is the permissive fallback: a recipe scoring above this (or
// above the active minimum-score filter, if higher) is never excluded purely
// for lacking keyword matches.
const goalScoreFloor = 50

var goalRules = map[recipe.Goal]goalRule{
	recipe.GoalLongevity: {
		matcher: newTermMatcher(
			"olive oil", "kale", "spinach", "leafy greens", "beans", "lentils",
			"walnuts", "almonds", "berries", "blueberries", "whole grain",
			"green tea", "turmeric", "garlic", "sweet potato",
		),
		minMatches:   2,
		scoreCeiling: 80,
	},
	recipe.GoalHeartHealth: {
		matcher: newTermMatcher(
			"salmon", "oats", "oatmeal", "olive oil", "walnuts", "avocado",
			"beans", "lentils", "berries", "flaxseed", "chia",
		),
		minMatches:   2,
		scoreCeiling: 75,
	},
	recipe.GoalBrainHealth: {
		matcher: newTermMatcher(
			"salmon", "sardines", "blueberries", "walnuts", "eggs", "turmeric",
			"dark chocolate", "leafy greens", "broccoli", "pumpkin seeds",
		),
		minMatches:   2,
		scoreCeiling: 75,
	},
	recipe.GoalGutHealth: {
		matcher: newTermMatcher(
			"yogurt", "kefir", "sauerkraut", "kimchi", "miso", "tempeh",
			"oats", "garlic", "onion", "leek", "banana", "asparagus",
		),
		minMatches:   2,
		scoreCeiling: 75,
	},
	recipe.GoalWeightManagement: {
		matcher: newTermMatcher(
			"salad", "broccoli", "cauliflower", "zucchini", "spinach",
			"grilled", "quinoa", "cottage cheese", "egg whites", "cucumber",
		),
		minMatches:   2,
		scoreCeiling: 70,
	},
	recipe.GoalAntiInflammatory: {
		matcher: newTermMatcher(
			"turmeric", "ginger", "olive oil", "berries", "salmon",
			"leafy greens", "walnuts", "green tea", "dark chocolate",
		),
		minMatches:   2,
		scoreCeiling: 75,
	},
}

func hasTag(r *recipe.Recipe, tag string) bool {
	for _, t := range r.Tags() {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
