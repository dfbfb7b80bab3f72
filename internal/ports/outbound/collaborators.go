// Package outbound defines the interfaces for outbound ports (secondary/driven
// adapters). The allocation engine consumes its collaborators exclusively
// through these interfaces so tests can substitute deterministic fakes.
package outbound

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// ErrRecipeNotFound is returned by repositories when a lookup misses
var ErrRecipeNotFound = errors.New("recipe not found")

// ErrCacheMiss is returned by cache repositories when a key is absent
var ErrCacheMiss = errors.New("cache miss")

// RecipeRepository defines the interface for the user's recipe collection
type RecipeRepository interface {
	FindAll(ctx context.Context) ([]*recipe.Recipe, error)
	FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error)
	FindBySource(ctx context.Context, source recipe.Source) ([]*recipe.Recipe, error)

	// Save upserts a recipe. Newly fetched provider recipes are saved as a
	// side effect of allocation; failures are logged and never abort a plan.
	Save(ctx context.Context, r *recipe.Recipe) error

	Count(ctx context.Context) (int64, error)
}

// SearchQuery describes a provider search-by-criteria request
type SearchQuery struct {
	Query    string
	Diets    []recipe.Diet
	MealType *recipe.MealType
	Count    int
	Offset   int
}

// RecipeSummary is a lightweight provider search result
type RecipeSummary struct {
	ExternalID string
	Title      string
	ImageURL   string
}

// RecipeDetails is a full provider record, fetched per summary
type RecipeDetails struct {
	ExternalID  string
	Title       string
	Ingredients []string
	DishTypes   []string
	Diets       []string
	HealthScore int
}

// RecipeProvider defines the interface to the external recipe database.
// Search and FetchDetails are blocking network operations; the engine issues
// them one at a time in allocator order.
type RecipeProvider interface {
	Search(ctx context.Context, query SearchQuery) ([]RecipeSummary, error)
	FetchDetails(ctx context.Context, externalID string) (*RecipeDetails, error)

	// Convert turns a provider record into a domain recipe. It may fail
	// per-record on missing core data without aborting a batch; such
	// failures unwrap to a CONVERSION_FAILED application error.
	Convert(details *RecipeDetails) (*recipe.Recipe, error)
}

// ScoringEngine classifies recipes into meal slots and supplies a fallback
// health/longevity score when a recipe carries none.
type ScoringEngine interface {
	ClassifyMealTypes(r *recipe.Recipe) recipe.MealTypeSet
	FallbackScore(r *recipe.Recipe) int
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
