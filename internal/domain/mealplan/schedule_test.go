package mealplan

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
)

// ScheduleTestSuite provides a test suite for slot scheduling
type ScheduleTestSuite struct {
	suite.Suite
	day time.Time
}

func (suite *ScheduleTestSuite) SetupSuite() {
	suite.day = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
}

func (suite *ScheduleTestSuite) at(hour, minute int) time.Time {
	return time.Date(2025, time.March, 10, hour, minute, 0, 0, time.UTC)
}

func (suite *ScheduleTestSuite) TestCanonicalTimes() {
	suite.Run("NoWindow_ShouldUseCanonicalTimes", func() {
		// Arrange
		expected := map[recipe.MealType]time.Time{
			recipe.MealTypeBreakfast: suite.at(8, 0),
			recipe.MealTypeLunch:     suite.at(12, 30),
			recipe.MealTypeSnack:     suite.at(15, 30),
			recipe.MealTypeDinner:    suite.at(18, 30),
			recipe.MealTypeDessert:   suite.at(20, 30),
		}

		for mealType, want := range expected {
			// Act
			got := ScheduleFor(mealType, suite.day, 0, nil)

			// Assert
			assert.Equal(suite.T(), want, got, "meal type %s", mealType)
		}
	})
}

func (suite *ScheduleTestSuite) TestWindowTimes() {
	window := &EatingWindow{
		Start: ClockTime{Hour: 12, Minute: 0},
		End:   ClockTime{Hour: 20, Minute: 0},
	}

	suite.Run("Breakfast_ShouldOpenTheWindow", func() {
		// Act
		got := ScheduleFor(recipe.MealTypeBreakfast, suite.day, 0, window)

		// Assert
		assert.Equal(suite.T(), suite.at(12, 0), got)
	})

	suite.Run("Lunch_ShouldFallAtWindowMidpoint", func() {
		// Act
		got := ScheduleFor(recipe.MealTypeLunch, suite.day, 0, window)

		// Assert
		assert.Equal(suite.T(), suite.at(16, 0), got)
	})

	suite.Run("Dinner_ShouldBackOffWindowClose", func() {
		// Act
		got := ScheduleFor(recipe.MealTypeDinner, suite.day, 0, window)

		// Assert
		assert.Equal(suite.T(), suite.at(19, 30), got)
	})

	suite.Run("TinyWindow_ShouldClampDinnerToStart", func() {
		// Arrange
		tiny := &EatingWindow{
			Start: ClockTime{Hour: 18, Minute: 0},
			End:   ClockTime{Hour: 18, Minute: 15},
		}

		// Act
		got := ScheduleFor(recipe.MealTypeDinner, suite.day, 0, tiny)

		// Assert
		assert.Equal(suite.T(), suite.at(18, 0), got)
	})

	suite.Run("Snack_ShouldSpreadBySlotIndex", func() {
		// Act
		first := ScheduleFor(recipe.MealTypeSnack, suite.day, 0, window)
		second := ScheduleFor(recipe.MealTypeSnack, suite.day, 1, window)

		// Assert
		assert.NotEqual(suite.T(), first, second)
		assert.True(suite.T(), first.After(suite.at(12, 0)))
		assert.True(suite.T(), second.Before(suite.at(20, 0)))
	})
}

func (suite *ScheduleTestSuite) TestDeterminism() {
	suite.Run("SameInputs_ShouldYieldSameInstant", func() {
		// Arrange
		window := &EatingWindow{
			Start: ClockTime{Hour: 10, Minute: 0},
			End:   ClockTime{Hour: 18, Minute: 0},
		}

		// Act
		first := ScheduleFor(recipe.MealTypeDessert, suite.day, 2, window)
		second := ScheduleFor(recipe.MealTypeDessert, suite.day, 2, window)

		// Assert
		assert.Equal(suite.T(), first, second)
	})
}

func TestScheduleTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleTestSuite))
}
