// Package inbound defines the interfaces for inbound ports (primary/driving
// adapters). These are the use cases the HTTP layer invokes.
package inbound

import (
	"context"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
)

// PlannerService is the engine's caller-facing surface. GeneratePlan is
// idempotent to call repeatedly, always terminates, and always returns a
// structurally valid plan; a shorter-than-requested plan is a valid outcome,
// not an error. A hard error is reserved for total provider unavailability
// when local recipes cannot cover even the unfiltered meal-type requirement.
type PlannerService interface {
	GeneratePlan(ctx context.Context, prefs mealplan.PreferenceContext) (*mealplan.MealPlan, error)

	// CurrentProposal returns the most recently generated, not yet approved
	// plan, or nil. Starting a new generation discards the previous proposal.
	CurrentProposal() *mealplan.MealPlan

	// ApproveProposal marks the current proposal as accepted by the user
	ApproveProposal(ctx context.Context) (*mealplan.MealPlan, error)
}
