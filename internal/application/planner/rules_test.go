package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/test/testutils"
)

// DietRulesTestSuite provides a test suite for dietary rule matching
type DietRulesTestSuite struct {
	suite.Suite
}

func (suite *DietRulesTestSuite) TestTokenize() {
	suite.Run("Punctuation_ShouldSplitTokens", func() {
		assert.Equal(suite.T(), []string{"olive", "oil", "tomatoes"}, tokenize("Olive oil, tomatoes."))
	})

	suite.Run("HyphenatedCompound_ShouldStaySingleToken", func() {
		assert.Equal(suite.T(), []string{"chicken-free"}, tokenize("chicken-free"))
	})
}

func (suite *DietRulesTestSuite) TestTermMatcher() {
	suite.Run("PhraseMatch_ShouldConsumeComponentWords", func() {
		// Arrange
		m := newTermMatcher("chicken", "chicken broth")

		// Act
		count := m.Count(tokenize("chicken broth, carrots, celery"))

		// Assert: the phrase consumed both tokens, so "chicken" alone
		// contributes nothing extra
		assert.Equal(suite.T(), 1, count)
	})

	suite.Run("SeparateOccurrences_ShouldEachCount", func() {
		// Arrange
		m := newTermMatcher("chicken", "chicken broth")

		// Act
		count := m.Count(tokenize("chicken thighs simmered in chicken broth"))

		// Assert
		assert.Equal(suite.T(), 2, count)
	})

	suite.Run("HyphenatedToken_ShouldNotMatchComponent", func() {
		// Arrange
		m := newTermMatcher("chicken")

		// Assert
		assert.False(suite.T(), m.Matches(tokenize("chicken-free bouillon")))
	})
}

func (suite *DietRulesTestSuite) TestDietAllows() {
	suite.Run("Vegan_ShouldExcludeChickenBroth", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Weeknight Soup").
			WithIngredientText("chicken broth, carrots, celery").
			Build()

		// Assert
		assert.False(suite.T(), dietAllows(recipe.DietVegan, r))
	})

	suite.Run("Vegan_ShouldAllowPlantOnly", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Lentil Stew").
			WithIngredientText("lentils, carrots, celery, olive oil").
			Build()

		// Assert
		assert.True(suite.T(), dietAllows(recipe.DietVegan, r))
	})

	suite.Run("VeganCategoryTag_ShouldShortCircuitIngredients", func() {
		// Arrange: tagged vegan, the ingredient heuristic is skipped entirely
		r := testutils.NewRecipeBuilder().
			WithTitle("Vegan Mac").
			WithTags("vegan").
			WithIngredientText("cashew cheese, butter beans").
			Build()

		// Assert
		assert.True(suite.T(), dietAllows(recipe.DietVegan, r))
	})

	suite.Run("Vegetarian_ShouldAllowDairyAndEggs", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Shakshuka").
			WithIngredientText("eggs, tomatoes, feta cheese, olive oil").
			Build()

		// Assert
		assert.True(suite.T(), dietAllows(recipe.DietVegetarian, r))
		assert.False(suite.T(), dietAllows(recipe.DietVegan, r))
	})

	suite.Run("Pescatarian_ShouldAllowFishButNotPork", func() {
		// Arrange
		fish := testutils.NewRecipeBuilder().
			WithTitle("Seared Salmon").
			WithIngredientText("salmon, lemon, olive oil").
			Build()
		pork := testutils.NewRecipeBuilder().
			WithTitle("Carbonara").
			WithIngredientText("bacon, eggs, parmesan").
			Build()

		// Assert
		assert.True(suite.T(), dietAllows(recipe.DietPescatarian, fish))
		assert.False(suite.T(), dietAllows(recipe.DietPescatarian, pork))
	})

	suite.Run("Mediterranean_ShouldRequireTwoPositives", func() {
		// Arrange
		onePositive := testutils.NewRecipeBuilder().
			WithTitle("Plain Pasta").
			WithIngredientText("pasta, olive oil, salt").
			Build()
		twoPositives := testutils.NewRecipeBuilder().
			WithTitle("Greek Bowl").
			WithIngredientText("chickpeas, olive oil, cucumber").
			Build()

		// Assert
		assert.False(suite.T(), dietAllows(recipe.DietMediterranean, onePositive))
		assert.True(suite.T(), dietAllows(recipe.DietMediterranean, twoPositives))
	})

	suite.Run("UniversalDiets_ShouldPassEverything", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Bacon Burger").
			WithIngredientText("beef, bacon, cheese, white bread").
			Build()

		// Assert
		assert.True(suite.T(), dietAllows(recipe.DietClassic, r))
		assert.True(suite.T(), dietAllows(recipe.DietFlexitarian, r))
		assert.True(suite.T(), dietAllows(recipe.DietIntermittentFasting, r))
	})
}

func (suite *DietRulesTestSuite) TestProteinTags() {
	suite.Run("TagBeatsIngredientText", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Surf and Turf").
			WithTags("beef").
			WithIngredientText("shrimp, beef, butter").
			Build()

		// Assert
		assert.Equal(suite.T(), "beef", primaryProteinTag(r))
	})

	suite.Run("SeafoodTerm_ShouldMapToFishGroup", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Tuna Salad").
			WithIngredientText("tuna, mayonnaise, celery").
			Build()

		// Assert
		assert.Equal(suite.T(), "fish", primaryProteinTag(r))
	})

	suite.Run("NoProtein_ShouldReturnEmpty", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Fruit Salad").
			WithIngredientText("apples, oranges, grapes").
			Build()

		// Assert
		assert.Empty(suite.T(), primaryProteinTag(r))
	})
}

func TestDietRulesTestSuite(t *testing.T) {
	suite.Run(t, new(DietRulesTestSuite))
}
