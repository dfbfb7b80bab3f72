// Package mealplan contains the domain model for generated meal plans:
// preference contexts, planned meals, scheduling and the plan aggregate.
package mealplan

import (
	"fmt"
	"time"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// ClockTime is a time of day, independent of date and zone
type ClockTime struct {
	Hour   int
	Minute int
}

// Validate checks the clock time is within a day
func (c ClockTime) Validate() error {
	if c.Hour < 0 || c.Hour > 23 || c.Minute < 0 || c.Minute > 59 {
		return ErrInvalidClockTime
	}
	return nil
}

// Minutes returns minutes since midnight
func (c ClockTime) Minutes() int {
	return c.Hour*60 + c.Minute
}

// On anchors the clock time to a calendar day
func (c ClockTime) On(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour, c.Minute, 0, 0, day.Location())
}

// String renders the clock time as HH:MM
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// EatingWindow is a daily time-restricted-eating range. While active it
// suppresses the breakfast slot and compresses meal times into the window.
type EatingWindow struct {
	Start ClockTime
	End   ClockTime
}

// Validate checks the window is well formed and opens before it closes
func (w EatingWindow) Validate() error {
	if err := w.Start.Validate(); err != nil {
		return err
	}
	if err := w.End.Validate(); err != nil {
		return err
	}
	if w.End.Minutes() <= w.Start.Minutes() {
		return ErrWindowInverted
	}
	return nil
}

// DurationMinutes returns the window length in minutes
func (w EatingWindow) DurationMinutes() int {
	return w.End.Minutes() - w.Start.Minutes()
}

// PreferenceContext captures everything the engine needs to generate a plan
type PreferenceContext struct {
	Days      int
	MealTypes []recipe.MealType
	Diets     []recipe.Diet
	Goals     []recipe.Goal

	// MinScore of 0 disables score filtering
	MinScore int

	// Window, when non-nil, activates time-restricted eating
	Window *EatingWindow

	// StartDate is the first plan day; zero value means today
	StartDate time.Time
}

// Validate checks the preference context invariants
func (p PreferenceContext) Validate() error {
	if p.Days < 1 {
		return ErrNoDays
	}
	if len(p.MealTypes) == 0 {
		return ErrNoMealTypes
	}
	if p.MinScore < 0 || p.MinScore > 100 {
		return ErrInvalidMinScore
	}
	if p.Window != nil {
		if err := p.Window.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// EffectiveMealTypes returns the selected meal types in canonical order,
// with breakfast removed while an eating window is active.
func (p PreferenceContext) EffectiveMealTypes() []recipe.MealType {
	selected := recipe.NewMealTypeSet(p.MealTypes...)
	out := make([]recipe.MealType, 0, len(selected))
	for _, t := range recipe.CanonicalMealOrder() {
		if !selected.Contains(t) {
			continue
		}
		if p.Window != nil && t == recipe.MealTypeBreakfast {
			continue
		}
		out = append(out, t)
	}
	return out
}

// RequiredMeals is the total number of slots in the generation grid
func (p PreferenceContext) RequiredMeals() int {
	return p.Days * len(p.EffectiveMealTypes())
}

// EffectiveStartDate resolves the plan's first day. A zero StartDate anchors
// the plan to midnight of now's calendar day in now's location.
func (p PreferenceContext) EffectiveStartDate(now time.Time) time.Time {
	if p.StartDate.IsZero() {
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	}
	return p.StartDate
}
