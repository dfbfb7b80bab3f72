// Package spoonacular implements the external recipe provider port against
// a Spoonacular-compatible HTTP API.
package spoonacular

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/longevitykitchen/mealplanner/internal/domain/recipe"
	"github.com/longevitykitchen/mealplanner/internal/infrastructure/config"
	"github.com/longevitykitchen/mealplanner/internal/ports/outbound"
	"github.com/longevitykitchen/mealplanner/pkg/errors"
)

// Client implements the RecipeProvider port. Requests are rate limited
// client-side and search results are cached; detail fetches go straight to
// the API because each external ID is normally fetched once.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limiter    *rate.Limiter
	cache      outbound.CacheRepository
	cacheTTL   time.Duration
	logger     *zap.Logger
}

// NewClient creates a provider client. The cache is optional; nil disables
// search-result caching.
func NewClient(cfg config.ProviderConfig, cache outbound.CacheRepository, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: cfg.Timeout},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		cache:      cache,
		cacheTTL:   cfg.CacheTTL,
		logger:     logger.Named("spoonacular"),
	}
}

type searchResponse struct {
	Results []struct {
		ID    int64  `json:"id"`
		Title string `json:"title"`
		Image string `json:"image"`
	} `json:"results"`
	TotalResults int `json:"totalResults"`
}

type informationResponse struct {
	ID                  int64    `json:"id"`
	Title               string   `json:"title"`
	HealthScore         float64  `json:"healthScore"`
	DishTypes           []string `json:"dishTypes"`
	Diets               []string `json:"diets"`
	ExtendedIngredients []struct {
		Name     string `json:"name"`
		Original string `json:"original"`
	} `json:"extendedIngredients"`
}

// Search queries the provider's complexSearch endpoint
func (c *Client) Search(ctx context.Context, query outbound.SearchQuery) ([]outbound.RecipeSummary, error) {
	cacheKey := searchCacheKey(query)
	if cached, ok := c.cachedSearch(ctx, cacheKey); ok {
		return cached, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.NewProviderError("search recipes", err)
	}

	params := url.Values{}
	if query.Query != "" {
		params.Set("query", query.Query)
	}
	if len(query.Diets) > 0 {
		diets := make([]string, 0, len(query.Diets))
		for _, d := range query.Diets {
			if p := dietParam(d); p != "" {
				diets = append(diets, p)
			}
		}
		if len(diets) > 0 {
			params.Set("diet", strings.Join(diets, ","))
		}
	}
	if query.MealType != nil {
		params.Set("type", mealTypeParam(*query.MealType))
	}
	if query.Count > 0 {
		params.Set("number", strconv.Itoa(query.Count))
	}
	if query.Offset > 0 {
		params.Set("offset", strconv.Itoa(query.Offset))
	}

	var parsed searchResponse
	if err := c.get(ctx, "/recipes/complexSearch", params, &parsed); err != nil {
		return nil, errors.NewProviderError("search recipes", err)
	}

	summaries := make([]outbound.RecipeSummary, 0, len(parsed.Results))
	for _, result := range parsed.Results {
		summaries = append(summaries, outbound.RecipeSummary{
			ExternalID: strconv.FormatInt(result.ID, 10),
			Title:      result.Title,
			ImageURL:   result.Image,
		})
	}

	c.storeSearch(ctx, cacheKey, summaries)
	return summaries, nil
}

// FetchDetails retrieves one full provider record
func (c *Client) FetchDetails(ctx context.Context, externalID string) (*outbound.RecipeDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, errors.NewProviderError("fetch recipe details", err)
	}

	var parsed informationResponse
	path := fmt.Sprintf("/recipes/%s/information", url.PathEscape(externalID))
	if err := c.get(ctx, path, url.Values{}, &parsed); err != nil {
		return nil, errors.NewProviderError("fetch recipe details", err)
	}

	ingredients := make([]string, 0, len(parsed.ExtendedIngredients))
	for _, ing := range parsed.ExtendedIngredients {
		name := ing.Name
		if name == "" {
			name = ing.Original
		}
		if name != "" {
			ingredients = append(ingredients, name)
		}
	}

	return &outbound.RecipeDetails{
		ExternalID:  externalID,
		Title:       parsed.Title,
		Ingredients: ingredients,
		DishTypes:   parsed.DishTypes,
		Diets:       parsed.Diets,
		HealthScore: int(parsed.HealthScore),
	}, nil
}

// Convert turns a provider record into a domain recipe. Records missing core
// data fail individually without aborting the batch they arrived in.
func (c *Client) Convert(details *outbound.RecipeDetails) (*recipe.Recipe, error) {
	if details == nil {
		return nil, errors.NewConversionError("", "empty provider record")
	}
	if strings.TrimSpace(details.Title) == "" {
		return nil, errors.NewConversionError(details.ExternalID, "record has no title")
	}
	if len(details.Ingredients) == 0 {
		return nil, errors.NewConversionError(details.ExternalID, "record has no ingredients")
	}

	hints := recipe.MealTypeSet{}
	tags := make([]string, 0, len(details.DishTypes)+len(details.Diets))
	for _, dishType := range details.DishTypes {
		normalized := strings.ToLower(strings.TrimSpace(dishType))
		tags = append(tags, normalized)
		for _, t := range dishTypeMealTypes(normalized) {
			hints.Add(t)
		}
	}
	tags = append(tags, details.Diets...)

	var estimated *int
	if details.HealthScore > 0 {
		score := details.HealthScore
		if score > 100 {
			score = 100
		}
		estimated = &score
	}

	now := time.Now()
	rec, err := recipe.Rehydrate(recipe.Params{
		Title:          details.Title,
		Source:         recipe.SourceExternal,
		ExternalID:     details.ExternalID,
		Tags:           tags,
		MealTypeHints:  hints,
		Ingredients:    details.Ingredients,
		EstimatedScore: estimated,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	if err != nil {
		return nil, errors.NewConversionError(details.ExternalID, err.Error())
	}
	return rec, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out interface{}) error {
	if c.apiKey != "" {
		params.Set("apiKey", c.apiKey)
	}

	endpoint := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("provider returned status %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) cachedSearch(ctx context.Context, key string) ([]outbound.RecipeSummary, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	var summaries []outbound.RecipeSummary
	if err := json.Unmarshal(data, &summaries); err != nil {
		return nil, false
	}
	return summaries, true
}

func (c *Client) storeSearch(ctx context.Context, key string, summaries []outbound.RecipeSummary) {
	if c.cache == nil {
		return
	}
	data, err := json.Marshal(summaries)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, data, c.cacheTTL); err != nil {
		c.logger.Debug("search cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func searchCacheKey(query outbound.SearchQuery) string {
	var b strings.Builder
	b.WriteString("provider:search:")
	b.WriteString(query.Query)
	for _, d := range query.Diets {
		b.WriteString("|" + string(d))
	}
	if query.MealType != nil {
		b.WriteString("|t=" + string(*query.MealType))
	}
	fmt.Fprintf(&b, "|n=%d|o=%d", query.Count, query.Offset)
	return b.String()
}

// dietParam maps domain diets to the provider's diet parameter. Diets that
// restrict when you eat rather than what have no provider equivalent.
func dietParam(d recipe.Diet) string {
	switch d {
	case recipe.DietVegan:
		return "vegan"
	case recipe.DietVegetarian:
		return "vegetarian"
	case recipe.DietPescatarian:
		return "pescetarian"
	case recipe.DietMediterranean:
		return "mediterranean"
	default:
		return ""
	}
}

// mealTypeParam maps domain meal types to the provider's type parameter.
// Lunch and dinner recipes live under "main course" on the provider side.
func mealTypeParam(t recipe.MealType) string {
	switch t {
	case recipe.MealTypeLunch, recipe.MealTypeDinner:
		return "main course"
	default:
		return string(t)
	}
}

// dishTypeMealTypes maps a provider dish type to domain meal-type hints
func dishTypeMealTypes(dishType string) []recipe.MealType {
	switch dishType {
	case "main course", "main dish", "lunch", "dinner":
		return []recipe.MealType{recipe.MealTypeLunch, recipe.MealTypeDinner}
	case "breakfast", "brunch", "morning meal":
		return []recipe.MealType{recipe.MealTypeBreakfast}
	case "snack", "appetizer", "fingerfood":
		return []recipe.MealType{recipe.MealTypeSnack}
	case "dessert":
		return []recipe.MealType{recipe.MealTypeDessert}
	default:
		return nil
	}
}
