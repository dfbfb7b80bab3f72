package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	"github.com/longevitykitchen/mealplanner/test/testutils"
)

// RecipeRepositoryTestSuite provides a test suite for the in-memory repository
type RecipeRepositoryTestSuite struct {
	suite.Suite
	repository *RecipeRepository
	ctx        context.Context
}

func (suite *RecipeRepositoryTestSuite) SetupTest() {
	suite.repository = NewRecipeRepository()
	suite.ctx = context.Background()
}

func (suite *RecipeRepositoryTestSuite) TestSaveAndFind() {
	suite.Run("SavedRecipe_ShouldBeFoundByID", func() {
		// Arrange
		r := testutils.NewRecipeBuilder().WithTitle("Lentil Soup").Build()

		// Act
		require.NoError(suite.T(), suite.repository.Save(suite.ctx, r))
		found, err := suite.repository.FindByID(suite.ctx, r.ID())

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), r.ID(), found.ID())
		assert.Equal(suite.T(), "Lentil Soup", found.Title())
	})

	suite.Run("UnknownID_ShouldReturnNotFound", func() {
		// Act
		found, err := suite.repository.FindByID(suite.ctx, uuid.New())

		// Assert
		assert.Nil(suite.T(), found)
		assert.ErrorIs(suite.T(), err, outbound.ErrRecipeNotFound)
	})

	suite.Run("Save_ShouldUpsertExistingID", func() {
		// Arrange
		suite.SetupTest()
		id := uuid.New()
		original := testutils.NewRecipeBuilder().WithID(id).WithTitle("First Draft").Build()
		updated := testutils.NewRecipeBuilder().WithID(id).WithTitle("Final Version").Build()

		// Act
		require.NoError(suite.T(), suite.repository.Save(suite.ctx, original))
		require.NoError(suite.T(), suite.repository.Save(suite.ctx, updated))

		// Assert
		found, err := suite.repository.FindByID(suite.ctx, id)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Final Version", found.Title())

		count, err := suite.repository.Count(suite.ctx)
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), int64(1), count)
	})
}

func (suite *RecipeRepositoryTestSuite) TestCollectionQueries() {
	suite.Run("FindAll_ShouldReturnNewestFirst", func() {
		// Arrange
		older, err := recipe.Rehydrate(recipe.Params{
			Title:     "Older Dish",
			Source:    recipe.SourceUser,
			CreatedAt: time.Now().Add(-time.Hour),
		})
		require.NoError(suite.T(), err)
		newer, err := recipe.Rehydrate(recipe.Params{
			Title:     "Newer Dish",
			Source:    recipe.SourceUser,
			CreatedAt: time.Now(),
		})
		require.NoError(suite.T(), err)

		require.NoError(suite.T(), suite.repository.Save(suite.ctx, older))
		require.NoError(suite.T(), suite.repository.Save(suite.ctx, newer))

		// Act
		all, err := suite.repository.FindAll(suite.ctx)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), all, 2)
		assert.Equal(suite.T(), "Newer Dish", all[0].Title())
		assert.Equal(suite.T(), "Older Dish", all[1].Title())
	})

	suite.Run("FindBySource_ShouldFilterByOrigin", func() {
		// Arrange
		suite.SetupTest()
		user := testutils.NewRecipeBuilder().WithTitle("Home Cooking").Build()
		external := testutils.NewRecipeBuilder().WithTitle("Imported Dish").External("ext-1").Build()
		require.NoError(suite.T(), suite.repository.Save(suite.ctx, user))
		require.NoError(suite.T(), suite.repository.Save(suite.ctx, external))

		// Act
		userOnly, err := suite.repository.FindBySource(suite.ctx, recipe.SourceUser)

		// Assert
		require.NoError(suite.T(), err)
		require.Len(suite.T(), userOnly, 1)
		assert.Equal(suite.T(), "Home Cooking", userOnly[0].Title())
	})

	suite.Run("EmptyRepository_ShouldReturnEmptyNotNil", func() {
		// Arrange
		suite.SetupTest()

		// Act
		all, err := suite.repository.FindAll(suite.ctx)

		// Assert
		require.NoError(suite.T(), err)
		assert.NotNil(suite.T(), all)
		assert.Empty(suite.T(), all)
	})
}

func TestRecipeRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RecipeRepositoryTestSuite))
}
