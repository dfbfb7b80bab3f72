package gorm

import (
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// RecipeToModel converts a domain recipe to its GORM model
func RecipeToModel(r *recipe.Recipe) *RecipeModel {
	hints := r.MealTypeHints().Slice()
	hintStrings := make(StringSlice, 0, len(hints))
	for _, h := range hints {
		hintStrings = append(hintStrings, string(h))
	}

	return &RecipeModel{
		ID:             r.ID(),
		Title:          r.Title(),
		Source:         string(r.Source()),
		ExternalID:     r.ExternalID(),
		Tags:           StringSlice(r.Tags()),
		MealTypeHints:  hintStrings,
		Ingredients:    StringSlice(r.Ingredients()),
		IngredientText: r.IngredientText(),
		UserScore:      r.UserScore(),
		EstimatedScore: r.EstimatedScore(),
		CreatedAt:      r.CreatedAt(),
		UpdatedAt:      r.UpdatedAt(),
	}
}

// ModelToRecipe converts a GORM model back to the domain recipe
func ModelToRecipe(m *RecipeModel) (*recipe.Recipe, error) {
	hints := recipe.MealTypeSet{}
	for _, h := range m.MealTypeHints {
		if t, ok := recipe.ParseMealType(h); ok {
			hints.Add(t)
		}
	}

	return recipe.Rehydrate(recipe.Params{
		ID:             m.ID,
		Title:          m.Title,
		Source:         recipe.Source(m.Source),
		ExternalID:     m.ExternalID,
		Tags:           m.Tags,
		MealTypeHints:  hints,
		Ingredients:    m.Ingredients,
		IngredientText: m.IngredientText,
		UserScore:      m.UserScore,
		EstimatedScore: m.EstimatedScore,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	})
}
