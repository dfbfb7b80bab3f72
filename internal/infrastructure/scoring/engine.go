// Package scoring implements the heuristic scoring engine: meal-type
// classification and a fallback longevity score for recipes that carry
// neither a user analysis nor a provider estimate.
package scoring

import (
	"strings"
	"unicode"

	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// foodClass is a scored ingredient family
type foodClass struct {
	name   string
	terms  []string
	points int
}

// positiveClasses reward longevity-associated ingredient families. Each
// family counts once no matter how many of its terms appear.
var positiveClasses = []foodClass{
	{"vegetables", []string{"spinach", "kale", "broccoli", "carrot", "carrots", "tomato", "tomatoes", "zucchini", "eggplant", "cauliflower", "peppers", "leafy greens", "cabbage", "asparagus"}, 8},
	{"legumes", []string{"lentils", "chickpeas", "beans", "black beans", "edamame", "peas"}, 8},
	{"nuts and seeds", []string{"walnuts", "almonds", "cashews", "pumpkin seeds", "flaxseed", "chia", "sesame"}, 7},
	{"olive oil", []string{"olive oil", "extra virgin olive oil"}, 6},
	{"whole grains", []string{"oats", "oatmeal", "quinoa", "farro", "barley", "brown rice", "whole grain", "whole wheat", "buckwheat"}, 7},
	{"fish", []string{"salmon", "sardines", "mackerel", "trout", "tuna", "cod", "anchovies"}, 7},
	{"berries", []string{"blueberries", "strawberries", "raspberries", "blackberries", "berries"}, 6},
	{"fermented", []string{"yogurt", "kefir", "kimchi", "sauerkraut", "miso", "tempeh"}, 6},
}

// negativeClasses penalize ingredient families associated with poor outcomes
var negativeClasses = []foodClass{
	{"processed meat", []string{"bacon", "sausage", "ham", "pepperoni", "salami", "hot dog", "prosciutto"}, 12},
	{"added sugar", []string{"sugar", "brown sugar", "corn syrup", "high fructose", "candy", "frosting"}, 10},
	{"refined flour", []string{"white flour", "all-purpose flour", "white bread", "pastry"}, 7},
	{"deep fried", []string{"fried", "deep-fried", "battered"}, 8},
}

const (
	baseScore = 50
	minScore  = 0
	maxScore  = 100
)

// Engine implements the outbound ScoringEngine port
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a scoring engine
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{logger: logger.Named("scoring-engine")}
}

// FallbackScore computes a heuristic longevity score from the ingredient
// text: a neutral base adjusted by which ingredient families appear.
func (e *Engine) FallbackScore(r *recipe.Recipe) int {
	tokens := tokenize(r.IngredientText() + " " + r.Title())

	score := baseScore
	for _, class := range positiveClasses {
		if matchesAny(tokens, class.terms) {
			score += class.points
		}
	}
	for _, class := range negativeClasses {
		if matchesAny(tokens, class.terms) {
			score -= class.points
		}
	}

	if score < minScore {
		score = minScore
	}
	if score > maxScore {
		score = maxScore
	}
	return score
}

// titleMealTypeHints maps title keywords to slot classifications
var titleMealTypeHints = []struct {
	terms []string
	types []recipe.MealType
}{
	{[]string{"oatmeal", "oats", "pancake", "pancakes", "waffle", "waffles", "smoothie", "granola", "omelette", "omelet", "scrambled", "porridge", "toast"},
		[]recipe.MealType{recipe.MealTypeBreakfast}},
	{[]string{"cookie", "cookies", "cake", "brownie", "brownies", "pudding", "ice cream", "tart", "pie"},
		[]recipe.MealType{recipe.MealTypeDessert}},
	{[]string{"bites", "bars", "trail mix", "energy balls", "crackers", "dip", "hummus"},
		[]recipe.MealType{recipe.MealTypeSnack}},
	{[]string{"soup", "stew", "curry", "pasta", "risotto", "stir-fry", "stir fry", "casserole", "roast", "grilled", "bake", "bowl", "salad", "sandwich", "wrap", "tacos"},
		[]recipe.MealType{recipe.MealTypeLunch, recipe.MealTypeDinner}},
}

// ClassifyMealTypes infers which slots a recipe can serve. Tags are the
// strongest signal, then title keywords; a recipe giving no signal at all is
// classified as a main, serving lunch and dinner.
func (e *Engine) ClassifyMealTypes(r *recipe.Recipe) recipe.MealTypeSet {
	types := recipe.MealTypeSet{}

	for _, tag := range r.Tags() {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if t, ok := recipe.ParseMealType(normalized); ok {
			types.Add(t)
			continue
		}
		switch normalized {
		case "main", "main course", "main dish", "soup", "salad":
			types.Add(recipe.MealTypeLunch)
			types.Add(recipe.MealTypeDinner)
		case "appetizer", "side", "side dish", "fingerfood":
			types.Add(recipe.MealTypeSnack)
		case "brunch":
			types.Add(recipe.MealTypeBreakfast)
		}
	}
	if !types.IsEmpty() {
		return types
	}

	titleTokens := tokenize(r.Title())
	for _, hint := range titleMealTypeHints {
		if matchesAny(titleTokens, hint.terms) {
			for _, t := range hint.types {
				types.Add(t)
			}
		}
	}
	if !types.IsEmpty() {
		return types
	}

	return recipe.NewMealTypeSet(recipe.MealTypeLunch, recipe.MealTypeDinner)
}

// tokenize splits text into lowercase word tokens, keeping hyphens inside
// words so "stir-fry" stays one token.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-'
	})
}

// matchesAny reports whether any term occurs in the tokens with word
// boundaries; multi-word terms must appear as consecutive tokens.
func matchesAny(tokens []string, terms []string) bool {
	for _, term := range terms {
		words := tokenize(term)
		if len(words) == 0 {
			continue
		}
		for i := 0; i+len(words) <= len(tokens); i++ {
			matched := true
			for j, w := range words {
				if tokens[i+j] != w {
					matched = false
					break
				}
			}
			if matched {
				return true
			}
		}
	}
	return false
}
