package planner

import (
	"sync"

	"github.com/google/uuid"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
)

// scoreResolver applies the effective-score resolution order everywhere a
// score is compared: authoritative score, then estimated score, then the
// scoring engine's fallback computation. Fallback results are memoized so
// repeated comparisons within and across generations stay consistent.
type scoreResolver struct {
	engine outbound.ScoringEngine

	mu   sync.RWMutex
	memo map[uuid.UUID]int
}

func newScoreResolver(engine outbound.ScoringEngine) *scoreResolver {
	return &scoreResolver{
		engine: engine,
		memo:   make(map[uuid.UUID]int),
	}
}

// Effective resolves the score used for filtering and selection
func (s *scoreResolver) Effective(r *recipe.Recipe) int {
	if score, ok := r.KnownScore(); ok {
		return score
	}

	s.mu.RLock()
	score, ok := s.memo[r.ID()]
	s.mu.RUnlock()
	if ok {
		return score
	}

	score = s.engine.FallbackScore(r)

	s.mu.Lock()
	s.memo[r.ID()] = score
	s.mu.Unlock()

	return score
}

// Classifier resolves meal-type hints before allocation begins, producing
// classified recipes with the non-empty-hints guarantee. Stored records are
// never mutated; classification works on a copy of the hint set.
type Classifier struct {
	engine outbound.ScoringEngine
}

// NewClassifier creates a classifier backed by the scoring engine
func NewClassifier(engine outbound.ScoringEngine) *Classifier {
	return &Classifier{engine: engine}
}

// Classify resolves a single recipe's meal types
func (c *Classifier) Classify(r *recipe.Recipe) recipe.ClassifiedRecipe {
	hints := r.MealTypeHints()
	if hints.IsEmpty() {
		hints = c.engine.ClassifyMealTypes(r)
	}
	if hints.IsEmpty() {
		// The engine contract promises a non-empty classification; guard the
		// allocator invariant regardless.
		hints = recipe.NewMealTypeSet(recipe.MealTypeLunch, recipe.MealTypeDinner)
	}

	classified, err := recipe.NewClassifiedRecipe(r, hints)
	if err != nil {
		classified, _ = recipe.NewClassifiedRecipe(r, recipe.NewMealTypeSet(recipe.MealTypeLunch, recipe.MealTypeDinner))
	}
	return classified
}

// ClassifyAll resolves meal types for a whole collection
func (c *Classifier) ClassifyAll(recipes []*recipe.Recipe) []recipe.ClassifiedRecipe {
	out := make([]recipe.ClassifiedRecipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, c.Classify(r))
	}
	return out
}
