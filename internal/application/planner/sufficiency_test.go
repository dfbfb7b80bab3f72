package planner

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	"github.com/longevitykitchen/mealplanner/test/testutils"
)

// SufficiencyTestSuite provides a test suite for pool sourcing decisions
type SufficiencyTestSuite struct {
	suite.Suite
	provider   *testutils.MockRecipeProvider
	engine     *testutils.MockScoringEngine
	classifier *Classifier
	decider    *SufficiencyDecider
	rng        *rand.Rand
}

func (suite *SufficiencyTestSuite) SetupTest() {
	suite.provider = testutils.NewMockRecipeProvider()
	suite.engine = testutils.NewMockScoringEngine()
	suite.engine.SetupStandardMockBehavior()
	suite.classifier = NewClassifier(suite.engine)

	scorer := newScoreResolver(suite.engine)
	filter := NewEligibilityFilter(scorer, zap.NewNop())
	suite.decider = NewSufficiencyDecider(suite.provider, suite.classifier, filter, nil, zap.NewNop())
	suite.rng = rand.New(rand.NewSource(42))
}

func (suite *SufficiencyTestSuite) classifyAll(recipes []*recipe.Recipe) []recipe.ClassifiedRecipe {
	return suite.classifier.ClassifyAll(recipes)
}

func (suite *SufficiencyTestSuite) TestVarietyTarget() {
	suite.Run("Target_ShouldRoundUpBufferedCount", func() {
		assert.Equal(suite.T(), 28, VarietyTarget(21))
		assert.Equal(suite.T(), 13, VarietyTarget(10))
		assert.Equal(suite.T(), 2, VarietyTarget(1))
		assert.Equal(suite.T(), 0, VarietyTarget(0))
	})
}

func (suite *SufficiencyTestSuite) TestLocalOnlySourcing() {
	suite.Run("SufficientLocalSet_ShouldSkipProvider", func() {
		// Arrange: 2 days x 2 meal types -> 4 required, target 6
		prefs := mealplan.PreferenceContext{
			Days:      2,
			MealTypes: []recipe.MealType{recipe.MealTypeLunch, recipe.MealTypeDinner},
		}
		factory := testutils.NewRecipeFactory(7)
		eligible := suite.classifyAll(factory.CreateRecipes(8))

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, prefs, suite.rng)

		// Assert
		assert.True(suite.T(), decision.LocalOnly)
		assert.Len(suite.T(), decision.Pool, 6)
		assert.Zero(suite.T(), decision.Requested)
		assert.NoError(suite.T(), decision.ProviderErr)
		suite.provider.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything)
	})

	suite.Run("WeekOfThreeMeals_ShouldStayLocalWithThirtyRecipes", func() {
		// Arrange: 7 days x 3 meal types -> 21 required, target 28
		suite.SetupTest()
		prefs := mealplan.PreferenceContext{
			Days: 7,
			MealTypes: []recipe.MealType{
				recipe.MealTypeLunch, recipe.MealTypeDinner, recipe.MealTypeSnack,
			},
		}
		factory := testutils.NewRecipeFactory(23)
		eligible := suite.classifyAll(factory.CreateRecipes(30))

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, prefs, suite.rng)

		// Assert
		assert.True(suite.T(), decision.LocalOnly)
		assert.Len(suite.T(), decision.Pool, 28)
		assert.Zero(suite.T(), decision.Requested)
		suite.provider.AssertNotCalled(suite.T(), "Search", mock.Anything, mock.Anything)
	})
}

func (suite *SufficiencyTestSuite) TestGapFill() {
	prefs := mealplan.PreferenceContext{
		Days:      2,
		MealTypes: []recipe.MealType{recipe.MealTypeLunch, recipe.MealTypeDinner},
		Diets:     []recipe.Diet{recipe.DietVegetarian},
	}

	suite.Run("InsufficientLocalSet_ShouldRequestExactGap", func() {
		// Arrange: 3 eligible against a target of 6 -> gap of 3
		factory := testutils.NewRecipeFactory(11)
		eligible := suite.classifyAll(factory.CreateRecipes(3))

		fetched := []*recipe.Recipe{
			testutils.NewRecipeBuilder().
				WithTitle("Provider Ratatouille").
				External("ext-1").
				WithIngredientText("eggplant, zucchini, tomatoes, olive oil").
				WithEstimatedScore(70).
				Build(),
			testutils.NewRecipeBuilder().
				WithTitle("Provider Minestrone").
				External("ext-2").
				WithIngredientText("beans, tomatoes, pasta, olive oil").
				WithEstimatedScore(65).
				Build(),
		}

		suite.provider.On("Search", mock.Anything, outbound.SearchQuery{
			Diets: prefs.Diets,
			Count: 3,
		}).Return([]outbound.RecipeSummary{
			{ExternalID: "ext-1", Title: "Provider Ratatouille"},
			{ExternalID: "ext-2", Title: "Provider Minestrone"},
		}, nil).Once()
		for i, r := range fetched {
			details := &outbound.RecipeDetails{ExternalID: r.ExternalID(), Title: r.Title()}
			suite.provider.On("FetchDetails", mock.Anything, r.ExternalID()).Return(details, nil).Once()
			suite.provider.On("Convert", details).Return(fetched[i], nil).Once()
		}

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, prefs, suite.rng)

		// Assert
		assert.False(suite.T(), decision.LocalOnly)
		assert.Equal(suite.T(), 3, decision.Requested)
		assert.False(suite.T(), decision.Relaxed)
		assert.Len(suite.T(), decision.Pool, 5)
		suite.provider.AssertExpectations(suite.T())
	})

	suite.Run("WeekOfThreeMealsWithFiveLocal_ShouldRequestTwentyThree", func() {
		// Arrange: target 28 against 5 eligible -> gap of 23
		suite.SetupTest()
		week := mealplan.PreferenceContext{
			Days: 7,
			MealTypes: []recipe.MealType{
				recipe.MealTypeLunch, recipe.MealTypeDinner, recipe.MealTypeSnack,
			},
		}
		factory := testutils.NewRecipeFactory(29)
		eligible := suite.classifyAll(factory.CreateRecipes(5))

		suite.provider.On("Search", mock.Anything, outbound.SearchQuery{
			Count: 23,
		}).Return([]outbound.RecipeSummary{}, nil).Once()

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, week, suite.rng)

		// Assert
		assert.Equal(suite.T(), 23, decision.Requested)
		assert.False(suite.T(), decision.LocalOnly)
		assert.Len(suite.T(), decision.Pool, 5)
		assert.NoError(suite.T(), decision.ProviderErr)
		suite.provider.AssertExpectations(suite.T())
	})

	suite.Run("FailedDetailFetch_ShouldSkipRecordNotBatch", func() {
		// Arrange
		suite.SetupTest()
		factory := testutils.NewRecipeFactory(13)
		eligible := suite.classifyAll(factory.CreateRecipes(3))

		keeper := testutils.NewRecipeBuilder().
			WithTitle("Provider Caponata").
			External("ext-keep").
			WithIngredientText("eggplant, tomatoes, olives, olive oil").
			WithEstimatedScore(68).
			Build()
		keeperDetails := &outbound.RecipeDetails{ExternalID: "ext-keep", Title: keeper.Title()}

		suite.provider.On("Search", mock.Anything, mock.Anything).Return([]outbound.RecipeSummary{
			{ExternalID: "ext-broken"},
			{ExternalID: "ext-keep"},
		}, nil).Once()
		suite.provider.On("FetchDetails", mock.Anything, "ext-broken").
			Return(nil, errors.New("record gone")).Once()
		suite.provider.On("FetchDetails", mock.Anything, "ext-keep").
			Return(keeperDetails, nil).Once()
		suite.provider.On("Convert", keeperDetails).Return(keeper, nil).Once()

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, prefs, suite.rng)

		// Assert
		assert.Len(suite.T(), decision.Pool, 4)
		assert.NoError(suite.T(), decision.ProviderErr)
	})

	suite.Run("NothingPassesStrictFilter_ShouldRelaxToDietOnly", func() {
		// Arrange: min score 90 rejects every fetched recipe on the strict
		// predicate; dietary relaxation keeps the vegetarian one
		suite.SetupTest()
		strict := prefs
		strict.MinScore = 90

		factory := testutils.NewRecipeFactory(17)
		locals := factory.CreateRecipes(2)
		for i := range locals {
			locals[i] = testutils.NewRecipeBuilder().
				WithTitle(locals[i].Title()).
				WithUserScore(95).
				Build()
		}
		eligible := suite.classifyAll(locals)

		lowScorer := testutils.NewRecipeBuilder().
			WithTitle("Provider Veggie Stew").
			External("ext-low").
			WithIngredientText("potatoes, carrots, peas").
			WithEstimatedScore(40).
			Build()
		lowDetails := &outbound.RecipeDetails{ExternalID: "ext-low", Title: lowScorer.Title()}

		suite.provider.On("Search", mock.Anything, mock.Anything).Return([]outbound.RecipeSummary{
			{ExternalID: "ext-low"},
		}, nil).Once()
		suite.provider.On("FetchDetails", mock.Anything, "ext-low").Return(lowDetails, nil).Once()
		suite.provider.On("Convert", lowDetails).Return(lowScorer, nil).Once()

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, strict, suite.rng)

		// Assert
		assert.True(suite.T(), decision.Relaxed)
		assert.Len(suite.T(), decision.Pool, 3)
	})
}

func (suite *SufficiencyTestSuite) TestProviderFailure() {
	suite.Run("SearchError_ShouldDegradeToLocalPool", func() {
		// Arrange
		prefs := mealplan.PreferenceContext{
			Days:      3,
			MealTypes: []recipe.MealType{recipe.MealTypeLunch, recipe.MealTypeDinner},
		}
		factory := testutils.NewRecipeFactory(19)
		eligible := suite.classifyAll(factory.CreateRecipes(4))

		suite.provider.On("Search", mock.Anything, mock.Anything).
			Return(nil, errors.New("provider unavailable")).Once()

		// Act
		decision := suite.decider.BuildPool(context.Background(), eligible, prefs, suite.rng)

		// Assert
		require.Error(suite.T(), decision.ProviderErr)
		assert.Len(suite.T(), decision.Pool, len(eligible))
		assert.False(suite.T(), decision.LocalOnly)
		assert.Equal(suite.T(), 4, decision.Requested)
	})
}

func TestSufficiencyTestSuite(t *testing.T) {
	suite.Run(t, new(SufficiencyTestSuite))
}
