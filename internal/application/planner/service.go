// Package planner implements the meal plan allocation engine: eligibility
// filtering, sufficiency sourcing, slot allocation and plan assembly behind
// the inbound PlannerService port.
package planner

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
	"github.com/longevitykitchen/mealplanner/internal/ports/inbound"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	pkgerrors "github.com/longevitykitchen/mealplanner/pkg/errors"
)

// Service orchestrates one plan generation end to end. Generations are
// serialized: a new request supersedes the in-flight proposal, and only the
// most recent generation may publish its result (last one wins).
type Service struct {
	repository outbound.RecipeRepository
	classifier *Classifier
	scorer     *scoreResolver
	filter     *EligibilityFilter
	decider    *SufficiencyDecider
	allocator  *SlotAllocator
	assembler  *PlanAssembler
	metrics    MetricsRecorder
	logger     *zap.Logger

	// seed, when non-zero, makes every generation deterministic
	seed int64

	generation atomic.Uint64

	mu       sync.RWMutex
	proposal *mealplan.MealPlan
}

var _ inbound.PlannerService = (*Service)(nil)

// Option configures optional service behavior
type Option func(*Service)

// WithSeed fixes the random source so generations are reproducible
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithMetrics attaches an engine metrics recorder
func WithMetrics(m MetricsRecorder) Option {
	return func(s *Service) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewService wires the engine's stages together
func NewService(
	repository outbound.RecipeRepository,
	provider outbound.RecipeProvider,
	engine outbound.ScoringEngine,
	logger *zap.Logger,
	opts ...Option,
) *Service {
	s := &Service{
		repository: repository,
		classifier: NewClassifier(engine),
		scorer:     newScoreResolver(engine),
		assembler:  NewPlanAssembler(),
		metrics:    nopMetrics{},
		logger:     logger.Named("planner-service"),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.filter = NewEligibilityFilter(s.scorer, logger)
	s.decider = NewSufficiencyDecider(provider, s.classifier, s.filter, s.metrics, logger)
	s.allocator = NewSlotAllocator(provider, repository, s.classifier, s.scorer, s.metrics, logger)
	return s
}

// GeneratePlan runs the full pipeline: load, classify, filter, source,
// allocate, assemble. It returns a structurally valid plan even when the
// pool could not cover every slot; the only hard failure is the provider
// being unreachable while the local collection has nothing eligible.
func (s *Service) GeneratePlan(ctx context.Context, prefs mealplan.PreferenceContext) (*mealplan.MealPlan, error) {
	if err := prefs.Validate(); err != nil {
		return nil, pkgerrors.NewValidationError(err.Error())
	}

	gen := s.generation.Add(1)
	started := time.Now()
	rng := s.newRand()

	recipes, err := s.repository.FindAll(ctx)
	if err != nil {
		s.metrics.ObserveGeneration(OutcomeFailed, time.Since(started).Seconds(), 0, prefs.RequiredMeals())
		return nil, pkgerrors.NewDatabaseError("load recipe collection", err)
	}

	classified := s.classifier.ClassifyAll(recipes)
	eligible := s.filter.Eligible(classified, prefs)

	decision := s.decider.BuildPool(ctx, eligible, prefs, rng)
	if len(decision.Pool) == 0 && decision.ProviderErr != nil {
		s.metrics.ObserveGeneration(OutcomeFailed, time.Since(started).Seconds(), 0, prefs.RequiredMeals())
		return nil, pkgerrors.NewProviderUnavailableError(decision.ProviderErr)
	}

	meals := s.allocator.Allocate(ctx, decision.Pool, prefs, rng, started)
	plan := s.assembler.Assemble(prefs, meals, started)

	required := prefs.RequiredMeals()
	outcome := OutcomeComplete
	if !plan.IsComplete(required) {
		outcome = OutcomePartial
	}
	s.metrics.ObserveGeneration(outcome, time.Since(started).Seconds(), len(meals), required)

	s.logger.Info("meal plan generated",
		zap.String("plan_id", plan.ID().String()),
		zap.Int("planned", len(meals)),
		zap.Int("required", required),
		zap.Bool("local_only", decision.LocalOnly),
		zap.Bool("relaxed", decision.Relaxed),
		zap.String("outcome", outcome),
	)

	// Publish only if no newer generation has started meanwhile
	if s.generation.Load() == gen {
		s.mu.Lock()
		s.proposal = plan
		s.mu.Unlock()
	}
	return plan, nil
}

// CurrentProposal returns the latest unapproved plan, or nil
func (s *Service) CurrentProposal() *mealplan.MealPlan {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.proposal
}

// ApproveProposal accepts the current proposal and clears it
func (s *Service) ApproveProposal(ctx context.Context) (*mealplan.MealPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.proposal == nil {
		return nil, pkgerrors.NewBadRequestError("no plan proposal to approve")
	}
	if err := s.proposal.Approve(); err != nil {
		return nil, pkgerrors.NewBadRequestError(err.Error())
	}

	approved := s.proposal
	s.proposal = nil
	return approved, nil
}

func (s *Service) newRand() *rand.Rand {
	if s.seed != 0 {
		return rand.New(rand.NewSource(s.seed))
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
