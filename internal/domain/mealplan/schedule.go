package mealplan

import (
	"time"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// Canonical times of day for each meal type outside an eating window.
var canonicalMealTimes = map[recipe.MealType]ClockTime{
	recipe.MealTypeBreakfast: {Hour: 8, Minute: 0},
	recipe.MealTypeLunch:     {Hour: 12, Minute: 30},
	recipe.MealTypeSnack:     {Hour: 15, Minute: 30},
	recipe.MealTypeDinner:    {Hour: 18, Minute: 30},
	recipe.MealTypeDessert:   {Hour: 20, Minute: 30},
}

const (
	// dinnerWindowOffsetMinutes backs dinner off the window's close
	dinnerWindowOffsetMinutes = 30
	// windowSpreadSlots is the modulus used to distribute snack and dessert
	// slots across an eating window
	windowSpreadSlots = 4
)

// ScheduleFor computes the timestamp for a slot. The computation is a pure
// function of its inputs: recomputing with the same meal type, day, slot
// index and window always yields the same instant.
func ScheduleFor(mealType recipe.MealType, day time.Time, slotIndex int, window *EatingWindow) time.Time {
	if window == nil {
		return canonicalMealTimes[mealType].On(day)
	}

	start := window.Start.Minutes()
	duration := window.DurationMinutes()

	var minutes int
	switch mealType {
	case recipe.MealTypeBreakfast:
		minutes = start
	case recipe.MealTypeLunch:
		minutes = start + duration/2
	case recipe.MealTypeDinner:
		minutes = window.End.Minutes() - dinnerWindowOffsetMinutes
		if minutes < start {
			minutes = start
		}
	default:
		// Snacks and desserts are spread across the window by slot index.
		step := (slotIndex % windowSpreadSlots) + 1
		minutes = start + duration*step/(windowSpreadSlots+1)
	}

	return ClockTime{Hour: minutes / 60, Minute: minutes % 60}.On(day)
}
