// Package sqlite provides SQLite database setup and configuration
package sqlite

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/longevitykitchen/mealplanner/internal/infrastructure/config"
	gormModels "github.com/longevitykitchen/mealplanner/internal/infrastructure/persistence/gorm"
)

// SetupDatabase creates and configures the SQLite database
func SetupDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	// Use in-memory database if no path provided
	dbPath := cfg.Path
	if dbPath == "" {
		dbPath = ":memory:"
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(parseLogLevel(cfg.LogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if cfg.AutoMigrate {
		if err := db.AutoMigrate(&gormModels.RecipeModel{}); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	return db, nil
}

// parseLogLevel maps the configured level name onto GORM's logger levels
func parseLogLevel(level string) logger.LogLevel {
	switch level {
	case "info":
		return logger.Info
	case "warn":
		return logger.Warn
	case "error":
		return logger.Error
	default:
		return logger.Silent
	}
}

// SeedDatabase populates the database with a starter recipe collection
func SeedDatabase(db *gorm.DB) error {
	var count int64
	db.Model(&gormModels.RecipeModel{}).Count(&count)
	if count > 0 {
		return nil // Already seeded
	}

	score := func(v int) *int { return &v }

	seedRecipes := []gormModels.RecipeModel{
		{
			Title:         "Mediterranean Lentil Soup",
			Source:        "user",
			Tags:          gormModels.StringSlice{"soup", "mediterranean"},
			MealTypeHints: gormModels.StringSlice{"lunch", "dinner"},
			Ingredients: gormModels.StringSlice{
				"lentils", "olive oil", "tomatoes", "carrots", "onion", "garlic",
			},
			UserScore: score(82),
		},
		{
			Title:         "Overnight Oats with Blueberries",
			Source:        "user",
			Tags:          gormModels.StringSlice{"breakfast"},
			MealTypeHints: gormModels.StringSlice{"breakfast"},
			Ingredients: gormModels.StringSlice{
				"oats", "blueberries", "yogurt", "chia", "honey",
			},
			UserScore: score(78),
		},
		{
			Title:         "Grilled Salmon with Quinoa",
			Source:        "user",
			Tags:          gormModels.StringSlice{"main course", "pescatarian"},
			MealTypeHints: gormModels.StringSlice{"dinner"},
			Ingredients: gormModels.StringSlice{
				"salmon", "quinoa", "olive oil", "lemon", "spinach",
			},
			UserScore: score(88),
		},
		{
			Title:         "Chickpea Salad Bowl",
			Source:        "user",
			Tags:          gormModels.StringSlice{"salad", "vegan"},
			MealTypeHints: gormModels.StringSlice{"lunch"},
			Ingredients: gormModels.StringSlice{
				"chickpeas", "cucumber", "tomatoes", "olive oil", "parsley",
			},
			UserScore: score(75),
		},
		{
			Title:         "Walnut and Banana Snack Plate",
			Source:        "user",
			Tags:          gormModels.StringSlice{"snack"},
			MealTypeHints: gormModels.StringSlice{"snack"},
			Ingredients: gormModels.StringSlice{
				"walnuts", "banana", "dark chocolate",
			},
			UserScore: score(66),
		},
	}

	for i := range seedRecipes {
		if err := db.Create(&seedRecipes[i]).Error; err != nil {
			return fmt.Errorf("failed to create seed recipe: %w", err)
		}
	}

	return nil
}
