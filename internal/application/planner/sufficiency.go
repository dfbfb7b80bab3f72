package planner

import (
	"context"
	"math"
	"math/rand"

	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
)

// varietyBufferFactor inflates the required-meal count into the variety
// target used to decide local-only vs. blended sourcing.
const varietyBufferFactor = 1.3

// VarietyTarget returns the required-meal count inflated by the buffer
// factor, rounded up.
func VarietyTarget(requiredMeals int) int {
	return int(math.Ceil(float64(requiredMeals) * varietyBufferFactor))
}

// SourcingDecision is the decider's output: the pool handed to the
// allocator plus how it was assembled.
type SourcingDecision struct {
	Pool []recipe.ClassifiedRecipe

	// LocalOnly is true when the eligible local set met the variety target
	LocalOnly bool

	// Requested is how many recipes were asked of the provider at gap-fill
	Requested int

	// Relaxed is true when provider results were re-filtered with the
	// diet-only predicate to avoid returning nothing
	Relaxed bool

	// ProviderErr holds the gap-fill failure when allocation proceeds
	// degraded with local recipes only
	ProviderErr error
}

// SufficiencyDecider compares the eligible-recipe count against the variety
// target and, when the local collection falls short, fills the gap from the
// external provider.
type SufficiencyDecider struct {
	provider   outbound.RecipeProvider
	classifier *Classifier
	filter     *EligibilityFilter
	metrics    MetricsRecorder
	logger     *zap.Logger
}

// NewSufficiencyDecider creates a decider
func NewSufficiencyDecider(
	provider outbound.RecipeProvider,
	classifier *Classifier,
	filter *EligibilityFilter,
	metrics MetricsRecorder,
	logger *zap.Logger,
) *SufficiencyDecider {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &SufficiencyDecider{
		provider:   provider,
		classifier: classifier,
		filter:     filter,
		metrics:    metrics,
		logger:     logger.Named("sufficiency-decider"),
	}
}

// BuildPool assembles the sourced pool for one generation. The provider is
// consulted only when the eligible local set is smaller than the variety
// target, and a provider failure degrades to local-only sourcing rather
// than failing the generation.
func (d *SufficiencyDecider) BuildPool(
	ctx context.Context,
	eligible []recipe.ClassifiedRecipe,
	prefs mealplan.PreferenceContext,
	rng *rand.Rand,
) SourcingDecision {
	target := VarietyTarget(prefs.RequiredMeals())

	if len(eligible) >= target {
		pool := shuffled(eligible, rng)
		return SourcingDecision{Pool: pool[:target], LocalOnly: true}
	}

	gap := target - len(eligible)
	d.logger.Info("local collection insufficient, requesting gap-fill",
		zap.Int("eligible", len(eligible)),
		zap.Int("variety_target", target),
		zap.Int("gap", gap),
	)

	fetched, err := d.fetchGapFill(ctx, prefs, gap)
	if err != nil {
		d.logger.Warn("gap-fill failed, proceeding with local recipes only", zap.Error(err))
		return SourcingDecision{
			Pool:        shuffled(eligible, rng),
			Requested:   gap,
			ProviderErr: err,
		}
	}

	accepted, relaxed := d.acceptFetched(fetched, prefs)
	pool := shuffled(append(append([]recipe.ClassifiedRecipe{}, eligible...), accepted...), rng)

	return SourcingDecision{
		Pool:      pool,
		Requested: gap,
		Relaxed:   relaxed,
	}
}

// fetchGapFill requests the shortfall from the provider and converts each
// record, discarding malformed ones without aborting the batch.
func (d *SufficiencyDecider) fetchGapFill(ctx context.Context, prefs mealplan.PreferenceContext, count int) ([]recipe.ClassifiedRecipe, error) {
	d.metrics.IncProviderCall("search")
	summaries, err := d.provider.Search(ctx, outbound.SearchQuery{
		Diets: prefs.Diets,
		Count: count,
	})
	if err != nil {
		return nil, err
	}

	converted := make([]recipe.ClassifiedRecipe, 0, len(summaries))
	for _, summary := range summaries {
		d.metrics.IncProviderCall("details")
		details, err := d.provider.FetchDetails(ctx, summary.ExternalID)
		if err != nil {
			d.logger.Warn("detail fetch failed, skipping result",
				zap.String("external_id", summary.ExternalID),
				zap.Error(err),
			)
			continue
		}

		rec, err := d.provider.Convert(details)
		if err != nil {
			d.logger.Debug("discarding malformed provider record",
				zap.String("external_id", summary.ExternalID),
				zap.Error(err),
			)
			continue
		}
		converted = append(converted, d.classifier.Classify(rec))
	}
	return converted, nil
}

// acceptFetched applies the same eligibility predicate to provider results.
// If nothing survives but the provider returned records, filtering relaxes
// to dietary compatibility only rather than returning nothing.
func (d *SufficiencyDecider) acceptFetched(fetched []recipe.ClassifiedRecipe, prefs mealplan.PreferenceContext) ([]recipe.ClassifiedRecipe, bool) {
	accepted := make([]recipe.ClassifiedRecipe, 0, len(fetched))
	for _, c := range fetched {
		if d.filter.IsEligible(c, prefs) {
			accepted = append(accepted, c)
		}
	}
	if len(accepted) > 0 || len(fetched) == 0 {
		return accepted, false
	}

	d.logger.Info("no provider results passed full filtering, relaxing to dietary-only",
		zap.Int("fetched", len(fetched)),
	)
	for _, c := range fetched {
		if d.filter.IsDietEligible(c, prefs) {
			accepted = append(accepted, c)
		}
	}
	return accepted, true
}

func shuffled(recipes []recipe.ClassifiedRecipe, rng *rand.Rand) []recipe.ClassifiedRecipe {
	out := make([]recipe.ClassifiedRecipe, len(recipes))
	copy(out, recipes)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
