package recipe

// ClassifiedRecipe pairs a Recipe with a guaranteed non-empty meal-type set.
// Classification happens once, before allocation, on a copy of the hints; the
// stored record is never mutated as a side effect of planning.
type ClassifiedRecipe struct {
	recipe    *Recipe
	mealTypes MealTypeSet
}

// NewClassifiedRecipe wraps a recipe with its resolved meal types. The set
// must be non-empty; allocation relies on that invariant.
func NewClassifiedRecipe(r *Recipe, mealTypes MealTypeSet) (ClassifiedRecipe, error) {
	if r == nil {
		return ClassifiedRecipe{}, ErrTitleEmpty
	}
	if mealTypes.IsEmpty() {
		return ClassifiedRecipe{}, ErrNoMealTypes
	}
	return ClassifiedRecipe{recipe: r, mealTypes: mealTypes.Clone()}, nil
}

// Recipe returns the underlying recipe
func (c ClassifiedRecipe) Recipe() *Recipe {
	return c.recipe
}

// MealTypes returns the resolved meal-type set
func (c ClassifiedRecipe) MealTypes() MealTypeSet {
	return c.mealTypes
}

// ServesMealType reports whether the recipe is classified for the given slot type
func (c ClassifiedRecipe) ServesMealType(t MealType) bool {
	return c.mealTypes.Contains(t)
}

// WithForcedMealType returns a copy whose meal types additionally include t.
// Used when a slot-specific provider fetch is authoritative for its slot even
// if the classifier disagrees.
func (c ClassifiedRecipe) WithForcedMealType(t MealType) ClassifiedRecipe {
	types := c.mealTypes.Clone()
	types.Add(t)
	return ClassifiedRecipe{recipe: c.recipe, mealTypes: types}
}
