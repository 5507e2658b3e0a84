package models

import (
	"time"
)

// Recipe represents a catalog entry. Recipes are loaded once and treated as read-only.
type Recipe struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Ingredients []string `json:"ingredients"` // required ingredients as authored
	Steps       string   `json:"steps"`
	CookingTime int      `json:"cooking_time"` // minutes
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
}

// Profile represents a stored user profile
type Profile struct {
	ID                  int64    `json:"id"`
	Name                string   `json:"name"`
	Ingredients         []string `json:"ingredients"`
	Preferences         string   `json:"preferences"`
	DietaryRestrictions string   `json:"dietary_restrictions"`
}

// Pantry represents the ingredients a chat currently has available
type Pantry struct {
	ID          string                `json:"id"`
	ChatID      int64                 `json:"chat_id"`
	Ingredients map[string]PantryItem `json:"ingredients"` // normalized name -> item
	LastUpdated time.Time             `json:"last_updated"`
}

// PantryItem represents a single ingredient in a pantry
type PantryItem struct {
	Name    string    `json:"name"`
	AddedAt time.Time `json:"added_at"`
}

// MatchResult is one ranked, annotated recipe suggestion
type MatchResult struct {
	RecipeID           int64    `json:"recipe_id"`
	Title              string   `json:"title"`
	Score              float64  `json:"score"`
	HaveIngredients    []string `json:"have_ingredients"`
	MissingIngredients []string `json:"missing_ingredients"`
	Steps              string   `json:"steps"`
	CookingTime        int      `json:"cooking_time"`
	Difficulty         string   `json:"difficulty"`
	Tags               []string `json:"tags"`
}

// CatalogStats summarizes the recipe catalog
type CatalogStats struct {
	TotalRecipes       int     `json:"total_recipes"`
	AverageCookingTime float64 `json:"average_cooking_time"`
}

// Usage tracks how often a chat asked for suggestions
type Usage struct {
	ChatID        int64     `json:"chat_id"`
	Requests      int       `json:"requests"`
	EmptyResults  int       `json:"empty_results"`
	LastSuggested []string  `json:"last_suggested,omitempty"`
	LastRequestAt time.Time `json:"last_request_at"`
}
