package mealplan

import "errors"

// Domain errors for plan generation inputs and state

var (
	ErrNoDays           = errors.New("plan must cover at least one day")
	ErrNoMealTypes      = errors.New("plan must select at least one meal type")
	ErrInvalidMinScore  = errors.New("minimum score must be between 0 and 100")
	ErrInvalidClockTime = errors.New("clock time out of range")
	ErrWindowInverted   = errors.New("eating window must open before it closes")
	ErrAlreadyApproved  = errors.New("meal plan is already approved")
)
