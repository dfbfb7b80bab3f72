// Package gorm provides GORM model definitions and repository
// implementations for the application
package gorm

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RecipeModel represents the GORM model for recipes
type RecipeModel struct {
	ID     uuid.UUID `gorm:"type:char(36);primaryKey"`
	Title  string    `gorm:"type:varchar(255);not null;index"`
	Source string    `gorm:"type:varchar(20);not null;index"`

	// ExternalID is the provider-side identifier, set only for external recipes
	ExternalID string `gorm:"type:varchar(100);index"`

	// Categorization
	Tags          StringSlice `gorm:"type:json"`
	MealTypeHints StringSlice `gorm:"type:json"`

	// Ingredients
	Ingredients    StringSlice `gorm:"type:json"`
	IngredientText string      `gorm:"type:text"`

	// Scores; nullable because either may be absent
	UserScore      *int `gorm:"column:user_score"`
	EstimatedScore *int `gorm:"column:estimated_score"`

	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
}

// BeforeCreate hook for RecipeModel
func (r *RecipeModel) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the custom table name
func (RecipeModel) TableName() string {
	return "recipes"
}

// StringSlice custom type for handling string slices in JSON
type StringSlice []string

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return fmt.Errorf("cannot scan %T into StringSlice", value)
	}
}

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if len(s) == 0 {
		return "[]", nil
	}
	return json.Marshal(s)
}
