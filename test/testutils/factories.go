package testutils

import (
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// RecipeFactory provides methods to create test recipes
type RecipeFactory struct {
	faker *gofakeit.Faker
}

// NewRecipeFactory creates a new recipe factory with seeded faker
func NewRecipeFactory(seed int64) *RecipeFactory {
	return &RecipeFactory{
		faker: gofakeit.New(seed),
	}
}

// RecipeBuilder provides a fluent interface for building test recipes
type RecipeBuilder struct {
	id             uuid.UUID
	title          string
	source         recipe.Source
	externalID     string
	tags           []string
	mealTypeHints  []recipe.MealType
	ingredients    []string
	ingredientText string
	userScore      *int
	estimatedScore *int
}

// NewRecipeBuilder creates a new recipe builder with default values
func NewRecipeBuilder() *RecipeBuilder {
	return &RecipeBuilder{
		id:          uuid.New(),
		title:       fmt.Sprintf("Test Recipe %s", uuid.NewString()[:8]),
		source:      recipe.SourceUser,
		ingredients: []string{"olive oil", "tomatoes", "garlic"},
	}
}

// WithID sets the recipe ID
func (rb *RecipeBuilder) WithID(id uuid.UUID) *RecipeBuilder {
	rb.id = id
	return rb
}

// WithTitle sets the recipe title
func (rb *RecipeBuilder) WithTitle(title string) *RecipeBuilder {
	rb.title = title
	return rb
}

// External marks the recipe as provider-sourced
func (rb *RecipeBuilder) External(externalID string) *RecipeBuilder {
	rb.source = recipe.SourceExternal
	rb.externalID = externalID
	return rb
}

// WithTags sets the category tags
func (rb *RecipeBuilder) WithTags(tags ...string) *RecipeBuilder {
	rb.tags = tags
	return rb
}

// WithMealTypes sets the stored meal-type hints
func (rb *RecipeBuilder) WithMealTypes(types ...recipe.MealType) *RecipeBuilder {
	rb.mealTypeHints = types
	return rb
}

// WithIngredients sets the structured ingredient list
func (rb *RecipeBuilder) WithIngredients(ingredients ...string) *RecipeBuilder {
	rb.ingredients = ingredients
	return rb
}

// WithIngredientText sets the raw ingredient text
func (rb *RecipeBuilder) WithIngredientText(text string) *RecipeBuilder {
	rb.ingredientText = text
	return rb
}

// WithUserScore sets the authoritative score
func (rb *RecipeBuilder) WithUserScore(score int) *RecipeBuilder {
	rb.userScore = &score
	return rb
}

// WithEstimatedScore sets the provider-estimated score
func (rb *RecipeBuilder) WithEstimatedScore(score int) *RecipeBuilder {
	rb.estimatedScore = &score
	return rb
}

// Build creates the recipe, panicking on invalid builder state so tests
// fail loudly.
func (rb *RecipeBuilder) Build() *recipe.Recipe {
	now := time.Now()
	r, err := recipe.Rehydrate(recipe.Params{
		ID:             rb.id,
		Title:          rb.title,
		Source:         rb.source,
		ExternalID:     rb.externalID,
		Tags:           rb.tags,
		MealTypeHints:  recipe.NewMealTypeSet(rb.mealTypeHints...),
		Ingredients:    rb.ingredients,
		IngredientText: rb.ingredientText,
		UserScore:      rb.userScore,
		EstimatedScore: rb.estimatedScore,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		panic(fmt.Sprintf("invalid test recipe: %v", err))
	}
	return r
}

// CreateRecipe creates a random user-authored recipe
func (f *RecipeFactory) CreateRecipe() *recipe.Recipe {
	return NewRecipeBuilder().
		WithTitle(f.faker.Dinner()).
		WithIngredients(f.faker.Vegetable(), f.faker.Fruit(), "olive oil").
		WithMealTypes(recipe.MealTypeLunch, recipe.MealTypeDinner).
		WithUserScore(f.faker.Number(40, 95)).
		Build()
}

// CreateRecipes creates n random recipes with distinct titles
func (f *RecipeFactory) CreateRecipes(n int) []*recipe.Recipe {
	out := make([]*recipe.Recipe, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, NewRecipeBuilder().
			WithTitle(fmt.Sprintf("%s %d", f.faker.Dinner(), i)).
			WithIngredients(f.faker.Vegetable(), f.faker.Fruit(), "olive oil").
			WithMealTypes(recipe.MealTypeLunch, recipe.MealTypeDinner).
			WithUserScore(f.faker.Number(40, 95)).
			Build())
	}
	return out
}
