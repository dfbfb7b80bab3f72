// Package recipe contains the core domain logic for recipes consumed by
// the meal plan allocation engine.
// This follows Domain-Driven Design principles with rich domain models.
package recipe

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// Recipe represents a recipe as stored: identity, provenance, categorization
// and scoring inputs. Meal-type hints may be absent on a stored recipe; the
// allocation engine only consumes recipes through ClassifiedRecipe, which
// guarantees non-empty hints.
type Recipe struct {
	// Aggregate root identifier
	id uuid.UUID

	// Basic attributes
	title  string
	source Source

	// Provider-side dedup key, present only for externally sourced recipes
	externalID string

	// Categorization
	tags          []string
	mealTypeHints MealTypeSet

	// Ingredients
	ingredients    []string
	ingredientText string

	// Scores. userScore is authoritative (set by the user's own analysis),
	// estimatedScore comes from the provider-conversion path. Either may be
	// absent; selection falls back to the scoring engine.
	userScore      *int
	estimatedScore *int

	createdAt time.Time
	updatedAt time.Time
}

// Params carries the full field set for rehydrating a Recipe from
// persistence or from provider conversion.
type Params struct {
	ID             uuid.UUID
	Title          string
	Source         Source
	ExternalID     string
	Tags           []string
	MealTypeHints  MealTypeSet
	Ingredients    []string
	IngredientText string
	UserScore      *int
	EstimatedScore *int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewRecipe creates a new user-authored Recipe with validation
func NewRecipe(title string, source Source) (*Recipe, error) {
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if source != SourceUser && source != SourceExternal {
		return nil, ErrInvalidSource
	}

	now := time.Now()
	return &Recipe{
		id:            uuid.New(),
		title:         title,
		source:        source,
		mealTypeHints: MealTypeSet{},
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Rehydrate reconstructs a Recipe from stored or converted data
func Rehydrate(p Params) (*Recipe, error) {
	if err := validateTitle(p.Title); err != nil {
		return nil, err
	}
	if p.Source != SourceUser && p.Source != SourceExternal {
		return nil, ErrInvalidSource
	}
	if p.Source == SourceExternal && p.ExternalID == "" {
		return nil, ErrMissingExternalID
	}

	id := p.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	hints := p.MealTypeHints
	if hints == nil {
		hints = MealTypeSet{}
	}

	return &Recipe{
		id:             id,
		title:          p.Title,
		source:         p.Source,
		externalID:     p.ExternalID,
		tags:           p.Tags,
		mealTypeHints:  hints,
		ingredients:    p.Ingredients,
		ingredientText: p.IngredientText,
		userScore:      p.UserScore,
		estimatedScore: p.EstimatedScore,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

// ID returns the recipe's unique identifier
func (r *Recipe) ID() uuid.UUID {
	return r.id
}

// Title returns the recipe's title
func (r *Recipe) Title() string {
	return r.title
}

// Source returns the recipe's origin
func (r *Recipe) Source() Source {
	return r.source
}

// IsUserAuthored reports whether the recipe came from the user's collection
func (r *Recipe) IsUserAuthored() bool {
	return r.source == SourceUser
}

// ExternalID returns the provider-side identifier, empty for user recipes
func (r *Recipe) ExternalID() string {
	return r.externalID
}

// Tags returns the recipe's free-text category tags
func (r *Recipe) Tags() []string {
	return r.tags
}

// MealTypeHints returns the stored meal-type hints, possibly empty
func (r *Recipe) MealTypeHints() MealTypeSet {
	return r.mealTypeHints
}

// Ingredients returns the structured ingredient list
func (r *Recipe) Ingredients() []string {
	return r.ingredients
}

// IngredientText returns the raw ingredient text. When no raw text was
// stored, the structured list is joined so keyword heuristics always have
// something to match against.
func (r *Recipe) IngredientText() string {
	if r.ingredientText != "" {
		return r.ingredientText
	}
	return strings.Join(r.ingredients, ", ")
}

// CreatedAt returns when the recipe was created
func (r *Recipe) CreatedAt() time.Time {
	return r.createdAt
}

// UpdatedAt returns when the recipe was last updated
func (r *Recipe) UpdatedAt() time.Time {
	return r.updatedAt
}

// KnownScore resolves the stored score: authoritative first, then estimated.
// The second return is false when neither is present and the caller must use
// the scoring engine's fallback.
func (r *Recipe) KnownScore() (int, bool) {
	if r.userScore != nil {
		return *r.userScore, true
	}
	if r.estimatedScore != nil {
		return *r.estimatedScore, true
	}
	return 0, false
}

// UserScore returns the authoritative score if present
func (r *Recipe) UserScore() *int {
	return r.userScore
}

// EstimatedScore returns the provider-estimated score if present
func (r *Recipe) EstimatedScore() *int {
	return r.estimatedScore
}

// SetUserScore records the user's own analysis score
func (r *Recipe) SetUserScore(score int) {
	r.userScore = &score
	r.updatedAt = time.Now()
}

// NormalizedTitle returns the near-duplicate key for this recipe's title
func (r *Recipe) NormalizedTitle() string {
	return NormalizeTitle(r.title)
}

// NormalizeTitle lowercases a title and collapses it to alphanumeric words
// separated by single spaces, so "Lentil Soup!" and "lentil  soup" share a key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastSpace = false
			continue
		}
		if !lastSpace {
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// validateTitle validates a recipe title
func validateTitle(title string) error {
	if len(strings.TrimSpace(title)) == 0 {
		return ErrTitleEmpty
	}
	if len(title) > 200 {
		return ErrTitleTooLong
	}
	return nil
}
