package planner

import (
	"time"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
)

// PlanAssembler turns the allocator's meal list into the plan aggregate. The
// plan's date range always spans the requested days, even when allocation
// terminated early and later days are sparse.
type PlanAssembler struct{}

// NewPlanAssembler creates an assembler
func NewPlanAssembler() *PlanAssembler {
	return &PlanAssembler{}
}

// Assemble builds an unapproved plan proposal from allocated meals
func (a *PlanAssembler) Assemble(prefs mealplan.PreferenceContext, meals []mealplan.PlannedMeal, now time.Time) *mealplan.MealPlan {
	start := prefs.EffectiveStartDate(now)
	end := start.AddDate(0, 0, prefs.Days-1)
	return mealplan.NewMealPlan(start, end, meals)
}
