package recipe

// Value Objects - Immutable objects that describe aspects of the domain

// MealType represents a meal slot category
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
	MealTypeDessert   MealType = "dessert"
)

// CanonicalMealOrder returns meal types in the fixed order the allocator
// walks each day.
func CanonicalMealOrder() []MealType {
	return []MealType{
		MealTypeBreakfast,
		MealTypeLunch,
		MealTypeDinner,
		MealTypeSnack,
		MealTypeDessert,
	}
}

// ParseMealType parses a meal type string, reporting whether it is valid
func ParseMealType(s string) (MealType, bool) {
	switch MealType(s) {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeDessert:
		return MealType(s), true
	}
	return "", false
}

// MealTypeSet is a set of meal types
type MealTypeSet map[MealType]struct{}

// NewMealTypeSet builds a set from the given meal types
func NewMealTypeSet(types ...MealType) MealTypeSet {
	s := make(MealTypeSet, len(types))
	for _, t := range types {
		s[t] = struct{}{}
	}
	return s
}

// Contains reports whether the set holds the given meal type
func (s MealTypeSet) Contains(t MealType) bool {
	_, ok := s[t]
	return ok
}

// Add inserts a meal type into the set
func (s MealTypeSet) Add(t MealType) {
	s[t] = struct{}{}
}

// IsEmpty reports whether the set has no members
func (s MealTypeSet) IsEmpty() bool {
	return len(s) == 0
}

// Intersects reports whether any of the given types is in the set
func (s MealTypeSet) Intersects(types []MealType) bool {
	for _, t := range types {
		if s.Contains(t) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the set
func (s MealTypeSet) Clone() MealTypeSet {
	c := make(MealTypeSet, len(s))
	for t := range s {
		c[t] = struct{}{}
	}
	return c
}

// Slice returns the members in canonical meal order
func (s MealTypeSet) Slice() []MealType {
	out := make([]MealType, 0, len(s))
	for _, t := range CanonicalMealOrder() {
		if s.Contains(t) {
			out = append(out, t)
		}
	}
	return out
}

// Source indicates where a recipe originated
type Source string

const (
	// SourceUser marks recipes authored or imported by the user
	SourceUser Source = "user"
	// SourceExternal marks recipes fetched from the external provider
	SourceExternal Source = "external"
)

// Diet represents a dietary preference label
type Diet string

const (
	DietClassic             Diet = "classic"
	DietMediterranean       Diet = "mediterranean"
	DietVegetarian          Diet = "vegetarian"
	DietVegan               Diet = "vegan"
	DietPescatarian         Diet = "pescatarian"
	DietFlexitarian         Diet = "flexitarian"
	DietIntermittentFasting Diet = "intermittent_fasting"
)

// ParseDiet parses a diet label, reporting whether it is valid
func ParseDiet(s string) (Diet, bool) {
	switch Diet(s) {
	case DietClassic, DietMediterranean, DietVegetarian, DietVegan,
		DietPescatarian, DietFlexitarian, DietIntermittentFasting:
		return Diet(s), true
	}
	return "", false
}

// Goal represents a health-goal label
type Goal string

const (
	GoalLongevity        Goal = "longevity"
	GoalHeartHealth      Goal = "heart_health"
	GoalBrainHealth      Goal = "brain_health"
	GoalGutHealth        Goal = "gut_health"
	GoalWeightManagement Goal = "weight_management"
	GoalAntiInflammatory Goal = "anti_inflammatory"
)

// ParseGoal parses a goal label, reporting whether it is valid
func ParseGoal(s string) (Goal, bool) {
	switch Goal(s) {
	case GoalLongevity, GoalHeartHealth, GoalBrainHealth, GoalGutHealth,
		GoalWeightManagement, GoalAntiInflammatory:
		return Goal(s), true
	}
	return "", false
}
