package mealplan

import (
	"time"

	"github.com/google/uuid"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// PlannedMeal references a recipe committed to one slot of the plan
type PlannedMeal struct {
	RecipeID    uuid.UUID
	MealType    recipe.MealType
	ScheduledAt time.Time

	// Title is a display snapshot taken at selection time
	Title string

	// Score is the effective score used when the recipe was selected
	Score int
}

// MealPlan is the engine's output: an in-memory proposal awaiting user
// approval. Persistence and activation happen only after approval.
type MealPlan struct {
	id        uuid.UUID
	startDate time.Time
	endDate   time.Time
	meals     []PlannedMeal
	createdAt time.Time
	approved  bool
}

// NewMealPlan assembles a plan proposal. The meal list is defensively copied
// and never nil, so an empty plan is still structurally valid.
func NewMealPlan(startDate, endDate time.Time, meals []PlannedMeal) *MealPlan {
	copied := make([]PlannedMeal, len(meals))
	copy(copied, meals)

	return &MealPlan{
		id:        uuid.New(),
		startDate: startDate,
		endDate:   endDate,
		meals:     copied,
		createdAt: time.Now(),
	}
}

// ID returns the plan's unique identifier
func (p *MealPlan) ID() uuid.UUID {
	return p.id
}

// StartDate returns the first plan day
func (p *MealPlan) StartDate() time.Time {
	return p.startDate
}

// EndDate returns the last plan day
func (p *MealPlan) EndDate() time.Time {
	return p.endDate
}

// Meals returns the ordered planned meals, never nil
func (p *MealPlan) Meals() []PlannedMeal {
	return p.meals
}

// CreatedAt returns when the proposal was generated
func (p *MealPlan) CreatedAt() time.Time {
	return p.createdAt
}

// IsApproved reports whether the user has accepted the plan
func (p *MealPlan) IsApproved() bool {
	return p.approved
}

// Approve marks the proposal as accepted by the user
func (p *MealPlan) Approve() error {
	if p.approved {
		return ErrAlreadyApproved
	}
	p.approved = true
	return nil
}

// IsComplete reports whether the plan filled every requested slot
func (p *MealPlan) IsComplete(required int) bool {
	return len(p.meals) >= required
}
