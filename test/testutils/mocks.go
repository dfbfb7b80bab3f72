// Package testutils provides mock implementations and data factories
// for testing
package testutils

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
)

// MockRecipeRepository provides a mock implementation of RecipeRepository
type MockRecipeRepository struct {
	mock.Mock
	mu      sync.RWMutex
	recipes map[uuid.UUID]*recipe.Recipe
}

// NewMockRecipeRepository creates a new mock recipe repository
func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{
		recipes: make(map[uuid.UUID]*recipe.Recipe),
	}
}

// FindAll returns the full recipe collection
func (m *MockRecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// FindByID finds a recipe by ID
func (m *MockRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

// FindBySource returns recipes filtered by origin
func (m *MockRecipeRepository) FindBySource(ctx context.Context, source recipe.Source) ([]*recipe.Recipe, error) {
	args := m.Called(ctx, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*recipe.Recipe), args.Error(1)
}

// Save saves a recipe
func (m *MockRecipeRepository) Save(ctx context.Context, r *recipe.Recipe) error {
	args := m.Called(ctx, r)

	if args.Error(0) == nil {
		m.mu.Lock()
		m.recipes[r.ID()] = r
		m.mu.Unlock()
	}

	return args.Error(0)
}

// Count returns the total count of recipes
func (m *MockRecipeRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// Saved returns the recipes recorded by successful Save calls
func (m *MockRecipeRepository) Saved() []*recipe.Recipe {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*recipe.Recipe, 0, len(m.recipes))
	for _, r := range m.recipes {
		out = append(out, r)
	}
	return out
}

// MockRecipeProvider provides a mock implementation of RecipeProvider
type MockRecipeProvider struct {
	mock.Mock
}

// NewMockRecipeProvider creates a new mock recipe provider
func NewMockRecipeProvider() *MockRecipeProvider {
	return &MockRecipeProvider{}
}

// Search searches the external provider
func (m *MockRecipeProvider) Search(ctx context.Context, query outbound.SearchQuery) ([]outbound.RecipeSummary, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]outbound.RecipeSummary), args.Error(1)
}

// FetchDetails retrieves one full provider record
func (m *MockRecipeProvider) FetchDetails(ctx context.Context, externalID string) (*outbound.RecipeDetails, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*outbound.RecipeDetails), args.Error(1)
}

// Convert turns a provider record into a domain recipe
func (m *MockRecipeProvider) Convert(details *outbound.RecipeDetails) (*recipe.Recipe, error) {
	args := m.Called(details)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

// MockScoringEngine provides a mock implementation of ScoringEngine
type MockScoringEngine struct {
	mock.Mock
}

// NewMockScoringEngine creates a new mock scoring engine
func NewMockScoringEngine() *MockScoringEngine {
	return &MockScoringEngine{}
}

// ClassifyMealTypes classifies a recipe into meal slots
func (m *MockScoringEngine) ClassifyMealTypes(r *recipe.Recipe) recipe.MealTypeSet {
	args := m.Called(r)
	return args.Get(0).(recipe.MealTypeSet)
}

// FallbackScore supplies a fallback health score
func (m *MockScoringEngine) FallbackScore(r *recipe.Recipe) int {
	args := m.Called(r)
	return args.Int(0)
}

// SetupStandardMockBehavior sets up common mock behaviors
func (m *MockScoringEngine) SetupStandardMockBehavior() {
	m.On("ClassifyMealTypes", mock.AnythingOfType("*recipe.Recipe")).
		Return(recipe.NewMealTypeSet(recipe.MealTypeLunch, recipe.MealTypeDinner))
	m.On("FallbackScore", mock.AnythingOfType("*recipe.Recipe")).
		Return(55)
}
