package recipe

import "errors"

// Domain errors for recipe values

var (
	ErrTitleEmpty        = errors.New("recipe title must not be empty")
	ErrTitleTooLong      = errors.New("recipe title must not exceed 200 characters")
	ErrInvalidSource     = errors.New("recipe source must be user or external")
	ErrMissingExternalID = errors.New("externally sourced recipe requires an external ID")
	ErrNoMealTypes       = errors.New("classified recipe requires at least one meal type")
)
