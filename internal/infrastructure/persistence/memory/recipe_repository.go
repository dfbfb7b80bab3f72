package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
)

// RecipeRepository implements an in-memory recipe repository
type RecipeRepository struct {
	mutex   sync.RWMutex
	recipes map[uuid.UUID]*recipe.Recipe
}

// NewRecipeRepository creates a new in-memory recipe repository
func NewRecipeRepository() *RecipeRepository {
	return &RecipeRepository{
		recipes: make(map[uuid.UUID]*recipe.Recipe),
	}
}

// FindAll returns the full recipe collection, newest first
func (r *RecipeRepository) FindAll(ctx context.Context) ([]*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*recipe.Recipe, 0, len(r.recipes))
	for _, rec := range r.recipes {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

// FindByID finds a recipe by ID
func (r *RecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	rec, exists := r.recipes[id]
	if !exists {
		return nil, outbound.ErrRecipeNotFound
	}
	return rec, nil
}

// FindBySource returns recipes filtered by origin
func (r *RecipeRepository) FindBySource(ctx context.Context, source recipe.Source) ([]*recipe.Recipe, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*recipe.Recipe, 0)
	for _, rec := range r.recipes {
		if rec.Source() == source {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

// Save upserts a recipe
func (r *RecipeRepository) Save(ctx context.Context, rec *recipe.Recipe) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	r.recipes[rec.ID()] = rec
	return nil
}

// Count returns the number of stored recipes
func (r *RecipeRepository) Count(ctx context.Context) (int64, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	return int64(len(r.recipes)), nil
}
