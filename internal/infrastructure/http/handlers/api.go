// Package handlers provides the REST API handlers
package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/longevitykitchen/mealplanner/internal/domain/mealplan"
	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/ports/inbound"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	"github.com/longevitykitchen/mealplanner/pkg/errors"
)

// APIHandlers provides REST API endpoints
type APIHandlers struct {
	plannerService inbound.PlannerService
	recipes        outbound.RecipeRepository
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewAPIHandlers creates API handlers
func NewAPIHandlers(plannerService inbound.PlannerService, recipes outbound.RecipeRepository, logger *zap.Logger) *APIHandlers {
	return &APIHandlers{
		plannerService: plannerService,
		recipes:        recipes,
		validate:       validator.New(),
		logger:         logger.Named("api"),
	}
}

// GeneratePlanRequest is the meal plan generation payload
type GeneratePlanRequest struct {
	Days      int      `json:"days" validate:"required,min=1,max=30"`
	MealTypes []string `json:"meal_types" validate:"required,min=1,dive,oneof=breakfast lunch snack dinner dessert"`
	Diets     []string `json:"diets" validate:"omitempty,dive,oneof=classic mediterranean vegetarian vegan pescatarian flexitarian intermittent_fasting"`
	Goals     []string `json:"goals" validate:"omitempty,dive,oneof=longevity heart_health brain_health gut_health weight_management anti_inflammatory"`
	MinScore  int      `json:"min_score" validate:"min=0,max=100"`
	StartDate string   `json:"start_date" validate:"omitempty,datetime=2006-01-02"`

	EatingWindow *EatingWindowRequest `json:"eating_window"`
}

// EatingWindowRequest is the time-restricted-eating payload
type EatingWindowRequest struct {
	Start string `json:"start" validate:"required,datetime=15:04"`
	End   string `json:"end" validate:"required,datetime=15:04"`
}

// PlanResponse is the meal plan representation returned by the API
type PlanResponse struct {
	ID        uuid.UUID      `json:"id"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	Approved  bool           `json:"approved"`
	Meals     []MealResponse `json:"meals"`
}

// MealResponse is one planned meal in a plan response
type MealResponse struct {
	RecipeID    uuid.UUID `json:"recipe_id"`
	MealType    string    `json:"meal_type"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Title       string    `json:"title"`
	Score       int       `json:"score"`
}

// RecipeResponse is a stored recipe representation
type RecipeResponse struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Source         string    `json:"source"`
	ExternalID     string    `json:"external_id,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
	Ingredients    []string  `json:"ingredients,omitempty"`
	UserScore      *int      `json:"user_score,omitempty"`
	EstimatedScore *int      `json:"estimated_score,omitempty"`
}

// GenerateMealPlan handles POST /api/v1/meal-plans
func (h *APIHandlers) GenerateMealPlan(w http.ResponseWriter, r *http.Request) {
	var req GeneratePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, errors.NewBadRequestError("invalid JSON payload"))
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	prefs, err := req.toPreferences()
	if err != nil {
		h.writeError(w, errors.NewValidationError(err.Error()))
		return
	}

	plan, err := h.plannerService.GeneratePlan(r.Context(), prefs)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, planToResponse(plan))
}

// GetCurrentProposal handles GET /api/v1/meal-plans/current
func (h *APIHandlers) GetCurrentProposal(w http.ResponseWriter, r *http.Request) {
	plan := h.plannerService.CurrentProposal()
	if plan == nil {
		h.writeError(w, errors.NewAppError(errors.CodeNotFound, "No plan proposal available", ""))
		return
	}
	h.writeJSON(w, http.StatusOK, planToResponse(plan))
}

// ApproveProposal handles POST /api/v1/meal-plans/current/approve
func (h *APIHandlers) ApproveProposal(w http.ResponseWriter, r *http.Request) {
	plan, err := h.plannerService.ApproveProposal(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, planToResponse(plan))
}

// ListRecipes handles GET /api/v1/recipes
func (h *APIHandlers) ListRecipes(w http.ResponseWriter, r *http.Request) {
	var (
		recipes []*recipe.Recipe
		err     error
	)

	if src := r.URL.Query().Get("source"); src != "" {
		if src != string(recipe.SourceUser) && src != string(recipe.SourceExternal) {
			h.writeError(w, errors.NewBadRequestError("source must be user or external"))
			return
		}
		recipes, err = h.recipes.FindBySource(r.Context(), recipe.Source(src))
	} else {
		recipes, err = h.recipes.FindAll(r.Context())
	}
	if err != nil {
		h.writeError(w, errors.NewDatabaseError("list recipes", err))
		return
	}

	out := make([]RecipeResponse, 0, len(recipes))
	for _, rec := range recipes {
		out = append(out, recipeToResponse(rec))
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"recipes": out,
		"total":   len(out),
	})
}

// GetRecipe handles GET /api/v1/recipes/{id}
func (h *APIHandlers) GetRecipe(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, errors.NewBadRequestError("invalid recipe id"))
		return
	}

	rec, err := h.recipes.FindByID(r.Context(), id)
	if err != nil {
		h.writeError(w, errors.NewRecipeNotFoundError(id.String()))
		return
	}
	h.writeJSON(w, http.StatusOK, recipeToResponse(rec))
}

func (req GeneratePlanRequest) toPreferences() (mealplan.PreferenceContext, error) {
	prefs := mealplan.PreferenceContext{
		Days:     req.Days,
		MinScore: req.MinScore,
	}

	for _, mt := range req.MealTypes {
		t, ok := recipe.ParseMealType(mt)
		if !ok {
			return prefs, errors.NewBadRequestError("unknown meal type: " + mt)
		}
		prefs.MealTypes = append(prefs.MealTypes, t)
	}
	for _, d := range req.Diets {
		diet, ok := recipe.ParseDiet(d)
		if !ok {
			return prefs, errors.NewBadRequestError("unknown diet: " + d)
		}
		prefs.Diets = append(prefs.Diets, diet)
	}
	for _, g := range req.Goals {
		goal, ok := recipe.ParseGoal(g)
		if !ok {
			return prefs, errors.NewBadRequestError("unknown goal: " + g)
		}
		prefs.Goals = append(prefs.Goals, goal)
	}

	if req.EatingWindow != nil {
		start, err := parseClockTime(req.EatingWindow.Start)
		if err != nil {
			return prefs, err
		}
		end, err := parseClockTime(req.EatingWindow.End)
		if err != nil {
			return prefs, err
		}
		prefs.Window = &mealplan.EatingWindow{Start: start, End: end}
	}

	if req.StartDate != "" {
		startDate, err := time.Parse("2006-01-02", req.StartDate)
		if err != nil {
			return prefs, errors.NewBadRequestError("start_date must be YYYY-MM-DD")
		}
		prefs.StartDate = startDate
	}

	return prefs, nil
}

func parseClockTime(s string) (mealplan.ClockTime, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return mealplan.ClockTime{}, errors.NewBadRequestError("clock times must be HH:MM")
	}
	return mealplan.ClockTime{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func planToResponse(plan *mealplan.MealPlan) PlanResponse {
	meals := make([]MealResponse, 0, len(plan.Meals()))
	for _, m := range plan.Meals() {
		meals = append(meals, MealResponse{
			RecipeID:    m.RecipeID,
			MealType:    string(m.MealType),
			ScheduledAt: m.ScheduledAt,
			Title:       m.Title,
			Score:       m.Score,
		})
	}
	return PlanResponse{
		ID:        plan.ID(),
		StartDate: plan.StartDate().Format("2006-01-02"),
		EndDate:   plan.EndDate().Format("2006-01-02"),
		Approved:  plan.IsApproved(),
		Meals:     meals,
	}
}

func recipeToResponse(rec *recipe.Recipe) RecipeResponse {
	return RecipeResponse{
		ID:             rec.ID(),
		Title:          rec.Title(),
		Source:         string(rec.Source()),
		ExternalID:     rec.ExternalID(),
		Tags:           rec.Tags(),
		Ingredients:    rec.Ingredients(),
		UserScore:      rec.UserScore(),
		EstimatedScore: rec.EstimatedScore(),
	}
}

func (h *APIHandlers) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *APIHandlers) writeError(w http.ResponseWriter, err error) {
	appErr := errors.Wrap(err, "request failed")

	if appErr.StatusCode() >= http.StatusInternalServerError {
		h.logger.Error("request error",
			zap.String("code", string(appErr.Code)),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Cause),
		)
	}

	h.writeJSON(w, appErr.StatusCode(), map[string]interface{}{
		"error": map[string]interface{}{
			"code":    appErr.Code,
			"message": appErr.Message,
			"details": appErr.Details,
		},
	})
}
