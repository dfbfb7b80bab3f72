package planner

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
)

const (
	// slotFallbackFetchCount is how many summaries one fallback search requests
	slotFallbackFetchCount = 3
	// slotFallbackMaxRounds bounds the per-slot provider attempts so a slot
	// that cannot be filled terminates instead of paging forever
	slotFallbackMaxRounds = 3
)

// SlotAllocator walks the day-by-meal-type grid and commits one recipe per
// slot. Within a single plan it never repeats a recipe ID, a normalized title
// or a provider external ID, and it avoids serving the same primary protein
// in consecutive slots. When the pool runs dry it broadens, then resets on
// exhaustion, then falls back to per-slot provider fetches; a slot that still
// cannot be filled terminates allocation with the partial plan built so far.
type SlotAllocator struct {
	provider   outbound.RecipeProvider
	repository outbound.RecipeRepository
	classifier *Classifier
	scorer     *scoreResolver
	metrics    MetricsRecorder
	logger     *zap.Logger
}

// NewSlotAllocator creates an allocator
func NewSlotAllocator(
	provider outbound.RecipeProvider,
	repository outbound.RecipeRepository,
	classifier *Classifier,
	scorer *scoreResolver,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *SlotAllocator {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SlotAllocator{
		provider:   provider,
		repository: repository,
		classifier: classifier,
		scorer:     scorer,
		metrics:    metrics,
		logger:     logger.Named("slot-allocator"),
	}
}

// allocationState tracks within-plan uniqueness. Normalized titles catch
// near-duplicates ("Lentil Soup" vs "lentil soup!") and external IDs catch
// the same provider recipe arriving twice under different local IDs.
type allocationState struct {
	usedIDs         map[uuid.UUID]bool
	usedTitles      map[string]bool
	usedExternalIDs map[string]bool
	lastProtein     string
	fallbackOffsets map[recipe.MealType]int
}

func newAllocationState() *allocationState {
	return &allocationState{
		usedIDs:         make(map[uuid.UUID]bool),
		usedTitles:      make(map[string]bool),
		usedExternalIDs: make(map[string]bool),
		fallbackOffsets: make(map[recipe.MealType]int),
	}
}

func (s *allocationState) commit(r *recipe.Recipe) {
	s.usedIDs[r.ID()] = true
	s.usedTitles[r.NormalizedTitle()] = true
	if ext := r.ExternalID(); ext != "" {
		s.usedExternalIDs[ext] = true
	}
	s.lastProtein = primaryProteinTag(r)
}

func (s *allocationState) isUsed(r *recipe.Recipe) bool {
	if s.usedIDs[r.ID()] || s.usedTitles[r.NormalizedTitle()] {
		return true
	}
	ext := r.ExternalID()
	return ext != "" && s.usedExternalIDs[ext]
}

// reset clears the uniqueness sets so a small pool can be reused on long
// plans. The protein memory survives the reset.
func (s *allocationState) reset() {
	s.usedIDs = make(map[uuid.UUID]bool)
	s.usedTitles = make(map[string]bool)
	s.usedExternalIDs = make(map[string]bool)
}

// Allocate fills the slot grid from the sourced pool. It always terminates
// and never errors: a pool or provider that cannot cover every slot produces
// a shorter plan.
func (a *SlotAllocator) Allocate(
	ctx context.Context,
	pool []recipe.ClassifiedRecipe,
	prefs mealplan.PreferenceContext,
	rng *rand.Rand,
	now time.Time,
) []mealplan.PlannedMeal {
	mealTypes := prefs.EffectiveMealTypes()
	required := prefs.RequiredMeals()
	startDate := prefs.EffectiveStartDate(now)
	state := newAllocationState()

	meals := make([]mealplan.PlannedMeal, 0, required)
	for day := 0; day < prefs.Days; day++ {
		date := startDate.AddDate(0, 0, day)
		for _, mealType := range mealTypes {
			if len(meals) >= required {
				return meals
			}

			chosen, ok := a.fillSlot(ctx, pool, state, prefs, mealType, rng)
			if !ok {
				a.logger.Warn("slot could not be filled, terminating with partial plan",
					zap.Int("day", day),
					zap.String("meal_type", string(mealType)),
					zap.Int("planned", len(meals)),
					zap.Int("required", required),
				)
				return meals
			}

			r := chosen.Recipe()
			state.commit(r)
			meals = append(meals, mealplan.PlannedMeal{
				RecipeID:    r.ID(),
				MealType:    mealType,
				ScheduledAt: mealplan.ScheduleFor(mealType, date, day, prefs.Window),
				Title:       r.Title(),
				Score:       a.scorer.Effective(r),
			})
		}
	}
	return meals
}

// fillSlot selects one recipe for a slot, escalating through the candidate
// strategies until one yields a recipe or all are spent.
func (a *SlotAllocator) fillSlot(
	ctx context.Context,
	pool []recipe.ClassifiedRecipe,
	state *allocationState,
	prefs mealplan.PreferenceContext,
	mealType recipe.MealType,
	rng *rand.Rand,
) (recipe.ClassifiedRecipe, bool) {
	candidates := slotCandidates(pool, state, mealType)

	if len(candidates) == 0 {
		if allCommitted(pool, state) {
			a.logger.Debug("pool exhausted, resetting uniqueness state",
				zap.Int("pool", len(pool)),
			)
			state.reset()
			candidates = slotCandidates(pool, state, mealType)
		} else {
			// Broaden: any uncommitted recipe may serve the slot
			for _, c := range pool {
				if !state.isUsed(c.Recipe()) {
					candidates = append(candidates, c)
				}
			}
		}
	}

	if len(candidates) == 0 {
		return a.slotFallback(ctx, state, prefs, mealType)
	}

	candidates = preferUserAuthored(candidates, rng)
	candidates = avoidRepeatProtein(candidates, state.lastProtein)
	return candidates[0], true
}

// slotCandidates returns the uncommitted pool entries serving a meal type
func slotCandidates(pool []recipe.ClassifiedRecipe, state *allocationState, mealType recipe.MealType) []recipe.ClassifiedRecipe {
	out := make([]recipe.ClassifiedRecipe, 0, len(pool))
	for _, c := range pool {
		if c.ServesMealType(mealType) && !state.isUsed(c.Recipe()) {
			out = append(out, c)
		}
	}
	return out
}

func allCommitted(pool []recipe.ClassifiedRecipe, state *allocationState) bool {
	for _, c := range pool {
		if !state.isUsed(c.Recipe()) {
			return false
		}
	}
	return len(pool) > 0
}

// preferUserAuthored restricts to the user's own recipes when any are
// present, then shuffles the chosen group so repeated generations vary.
func preferUserAuthored(candidates []recipe.ClassifiedRecipe, rng *rand.Rand) []recipe.ClassifiedRecipe {
	user := make([]recipe.ClassifiedRecipe, 0, len(candidates))
	for _, c := range candidates {
		if c.Recipe().IsUserAuthored() {
			user = append(user, c)
		}
	}
	chosen := candidates
	if len(user) > 0 {
		chosen = user
	}
	rng.Shuffle(len(chosen), func(i, j int) {
		chosen[i], chosen[j] = chosen[j], chosen[i]
	})
	return chosen
}

// avoidRepeatProtein drops candidates sharing the previous slot's protein
// group, unless that would leave nothing to choose from.
func avoidRepeatProtein(candidates []recipe.ClassifiedRecipe, lastProtein string) []recipe.ClassifiedRecipe {
	if lastProtein == "" {
		return candidates
	}
	varied := make([]recipe.ClassifiedRecipe, 0, len(candidates))
	for _, c := range candidates {
		if primaryProteinTag(c.Recipe()) != lastProtein {
			varied = append(varied, c)
		}
	}
	if len(varied) == 0 {
		return candidates
	}
	return varied
}

// slotFallback fetches fresh provider recipes for one starving slot. Each
// fetched recipe is forced to serve the slot's meal type and saved to the
// repository as a side effect; save failures are logged and ignored.
func (a *SlotAllocator) slotFallback(
	ctx context.Context,
	state *allocationState,
	prefs mealplan.PreferenceContext,
	mealType recipe.MealType,
) (recipe.ClassifiedRecipe, bool) {
	a.metrics.IncSlotFallback()

	for round := 0; round < slotFallbackMaxRounds; round++ {
		a.metrics.IncProviderCall("search")
		summaries, err := a.provider.Search(ctx, outbound.SearchQuery{
			Diets:    prefs.Diets,
			MealType: &mealType,
			Count:    slotFallbackFetchCount,
			Offset:   state.fallbackOffsets[mealType],
		})
		if err != nil {
			a.logger.Warn("slot fallback search failed",
				zap.String("meal_type", string(mealType)),
				zap.Error(err),
			)
			return recipe.ClassifiedRecipe{}, false
		}
		state.fallbackOffsets[mealType] += slotFallbackFetchCount
		if len(summaries) == 0 {
			return recipe.ClassifiedRecipe{}, false
		}

		for _, summary := range summaries {
			if state.usedExternalIDs[summary.ExternalID] {
				continue
			}

			a.metrics.IncProviderCall("details")
			details, err := a.provider.FetchDetails(ctx, summary.ExternalID)
			if err != nil {
				a.logger.Warn("slot fallback detail fetch failed",
					zap.String("external_id", summary.ExternalID),
					zap.Error(err),
				)
				continue
			}

			r, err := a.provider.Convert(details)
			if err != nil {
				a.logger.Debug("discarding malformed fallback record",
					zap.String("external_id", summary.ExternalID),
					zap.Error(err),
				)
				continue
			}
			if state.isUsed(r) {
				continue
			}

			if err := a.repository.Save(ctx, r); err != nil {
				a.logger.Warn("could not persist fallback recipe",
					zap.String("external_id", summary.ExternalID),
					zap.Error(err),
				)
			}

			return a.classifier.Classify(r).WithForcedMealType(mealType), true
		}
	}
	return recipe.ClassifiedRecipe{}, false
}
