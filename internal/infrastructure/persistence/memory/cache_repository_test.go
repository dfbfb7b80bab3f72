package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
)

// CacheRepositoryTestSuite provides a test suite for the in-memory cache
type CacheRepositoryTestSuite struct {
	suite.Suite
	cache *CacheRepository
	ctx   context.Context
}

func (suite *CacheRepositoryTestSuite) SetupTest() {
	suite.cache = NewCacheRepository()
	suite.ctx = context.Background()
}

func (suite *CacheRepositoryTestSuite) TestGetSet() {
	suite.Run("MissingKey_ShouldReturnCacheMiss", func() {
		// Act
		_, err := suite.cache.Get(suite.ctx, "absent")

		// Assert
		assert.ErrorIs(suite.T(), err, outbound.ErrCacheMiss)
	})

	suite.Run("StoredValue_ShouldRoundTrip", func() {
		// Arrange
		payload := []byte(`{"results": []}`)

		// Act
		require.NoError(suite.T(), suite.cache.Set(suite.ctx, "search:v", payload, time.Minute))
		got, err := suite.cache.Get(suite.ctx, "search:v")

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), payload, got)
	})

	suite.Run("ExpiredEntry_ShouldMiss", func() {
		// Arrange
		require.NoError(suite.T(), suite.cache.Set(suite.ctx, "ephemeral", []byte("x"), time.Nanosecond))
		time.Sleep(time.Millisecond)

		// Act
		_, err := suite.cache.Get(suite.ctx, "ephemeral")

		// Assert
		assert.ErrorIs(suite.T(), err, outbound.ErrCacheMiss)
	})

	suite.Run("Delete_ShouldRemoveEntry", func() {
		// Arrange
		require.NoError(suite.T(), suite.cache.Set(suite.ctx, "doomed", []byte("x"), time.Minute))

		// Act
		require.NoError(suite.T(), suite.cache.Delete(suite.ctx, "doomed"))
		_, err := suite.cache.Get(suite.ctx, "doomed")

		// Assert
		assert.ErrorIs(suite.T(), err, outbound.ErrCacheMiss)
	})
}

func TestCacheRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(CacheRepositoryTestSuite))
}
