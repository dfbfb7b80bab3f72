package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/test/testutils"
)

// EngineTestSuite provides a test suite for the heuristic scoring engine
type EngineTestSuite struct {
	suite.Suite
	engine *Engine
}

func (suite *EngineTestSuite) SetupSuite() {
	suite.engine = NewEngine(zap.NewNop())
}

func (suite *EngineTestSuite) TestFallbackScore() {
	suite.Run("NoRecognizedIngredients_ShouldScoreBase", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Mystery Dish").
			WithIngredientText("water, salt").
			Build()

		// Act
		score := suite.engine.FallbackScore(r)

		// Assert
		assert.Equal(suite.T(), 50, score)
	})

	suite.Run("PositiveFamilies_ShouldRaiseScore", func() {
		// Arrange: vegetables (+8), legumes (+8), olive oil (+6)
		r := testutils.NewRecipeBuilder().
			WithTitle("Lentil Vegetable Pot").
			WithIngredientText("lentils, carrots, olive oil").
			Build()

		// Act
		score := suite.engine.FallbackScore(r)

		// Assert
		assert.Equal(suite.T(), 72, score)
	})

	suite.Run("FamilyCountsOnce_ManyVegetablesOneBonus", func() {
		// Arrange: three vegetables, still +8 once
		r := testutils.NewRecipeBuilder().
			WithTitle("Triple Veg").
			WithIngredientText("spinach, kale, broccoli").
			Build()

		// Act
		score := suite.engine.FallbackScore(r)

		// Assert
		assert.Equal(suite.T(), 58, score)
	})

	suite.Run("NegativeFamilies_ShouldLowerScore", func() {
		// Arrange: processed meat (-12), refined flour (-7)
		r := testutils.NewRecipeBuilder().
			WithTitle("Bacon Sandwich").
			WithIngredientText("bacon, white bread, butter").
			Build()

		// Act
		score := suite.engine.FallbackScore(r)

		// Assert
		assert.Equal(suite.T(), 31, score)
	})

	suite.Run("Score_ShouldStayWithinBounds", func() {
		// Arrange: every positive family at once
		r := testutils.NewRecipeBuilder().
			WithTitle("Everything Bowl").
			WithIngredientText("kale, lentils, walnuts, olive oil, quinoa, salmon, blueberries, yogurt").
			Build()

		// Act
		score := suite.engine.FallbackScore(r)

		// Assert
		assert.LessOrEqual(suite.T(), score, 100)
		assert.GreaterOrEqual(suite.T(), score, 0)
	})

	suite.Run("TitleTokens_ShouldContributeEvidence", func() {
		// Arrange: grilled in the title triggers nothing, salmon does
		r := testutils.NewRecipeBuilder().
			WithTitle("Grilled Salmon").
			WithIngredientText("lemon, pepper").
			Build()

		// Act
		score := suite.engine.FallbackScore(r)

		// Assert
		assert.Equal(suite.T(), 57, score)
	})
}

func (suite *EngineTestSuite) TestClassifyMealTypes() {
	suite.Run("MealTypeTag_ShouldWin", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Morning Oats").
			WithTags("breakfast").
			Build()

		// Act
		types := suite.engine.ClassifyMealTypes(r)

		// Assert
		assert.True(suite.T(), types.Contains(recipe.MealTypeBreakfast))
		assert.False(suite.T(), types.Contains(recipe.MealTypeLunch))
	})

	suite.Run("MainCourseTag_ShouldServeLunchAndDinner", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("House Special").
			WithTags("main course").
			Build()

		// Act
		types := suite.engine.ClassifyMealTypes(r)

		// Assert
		assert.True(suite.T(), types.Contains(recipe.MealTypeLunch))
		assert.True(suite.T(), types.Contains(recipe.MealTypeDinner))
	})

	suite.Run("AppetizerTag_ShouldServeSnack", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().
			WithTitle("Stuffed Mushrooms").
			WithTags("appetizer").
			Build()

		// Act
		types := suite.engine.ClassifyMealTypes(r)

		// Assert
		assert.True(suite.T(), types.Contains(recipe.MealTypeSnack))
	})

	suite.Run("NoTags_TitleKeywordsDecide", func() {
		// Arrange
		pancakes := testutils.NewRecipeBuilder().WithTitle("Blueberry Pancakes").Build()
		brownies := testutils.NewRecipeBuilder().WithTitle("Fudge Brownies").Build()
		stirFry := testutils.NewRecipeBuilder().WithTitle("Veggie Stir-Fry").Build()

		// Assert
		assert.True(suite.T(), suite.engine.ClassifyMealTypes(pancakes).Contains(recipe.MealTypeBreakfast))
		assert.True(suite.T(), suite.engine.ClassifyMealTypes(brownies).Contains(recipe.MealTypeDessert))
		assert.True(suite.T(), suite.engine.ClassifyMealTypes(stirFry).Contains(recipe.MealTypeDinner))
	})

	suite.Run("NoSignalAtAll_ShouldDefaultToMain", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().WithTitle("Untitled Creation").Build()

		// Act
		types := suite.engine.ClassifyMealTypes(r)

		// Assert
		assert.True(suite.T(), types.Contains(recipe.MealTypeLunch))
		assert.True(suite.T(), types.Contains(recipe.MealTypeDinner))
		assert.False(suite.T(), types.Contains(recipe.MealTypeBreakfast))
	})
}

func TestEngineTestSuite(t *testing.T) {
	suite.Run(t, new(EngineTestSuite))
}
