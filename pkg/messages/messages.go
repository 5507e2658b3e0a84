package messages

import (
	"context"
	"fmt"
	"strings"

	"github.com/korjavin/smartpantry/pkg/logger"
	"github.com/korjavin/smartpantry/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Generator produces assistant text for an intent. *openai.Client satisfies it.
type Generator interface {
	GenerateChatMessage(ctx context.Context, intent string, contextData map[string]interface{}) (string, error)
}

// Service provides message generation functionality
type Service struct {
	generator Generator
	logger    *logger.Logger
}

// New creates a new message service. A nil generator makes every message use its static text.
func New(generator Generator) *Service {
	return &Service{
		generator: generator,
		logger:    logger.New("messages"),
	}
}

// Static texts shown by every presentation layer
const (
	WelcomeText     = "🍳 Welcome to SmartPantry! Tell me what ingredients you have and I'll suggest recipes you can cook."
	EmptyPantryText = "👆 Your pantry is empty. Add the ingredients you have to get recipe suggestions!"
	NoMatchesText   = "No matching recipes found. Try adding more common ingredients!"
)

// AssistantResponse returns a short assistant note about the top suggestion
func (s *Service) AssistantResponse(ctx context.Context, ingredients []string, recipeTitle string) string {
	if s.generator != nil {
		msg, err := s.generator.GenerateChatMessage(ctx, "assistant_response", map[string]interface{}{
			"ingredients": ingredients,
			"recipe":      recipeTitle,
		})
		if err == nil && msg != "" {
			return msg
		}
		if err != nil {
			s.logger.Error("Failed to generate assistant response: %v", err)
		}
	}
	return AssistantTemplate(ingredients, recipeTitle)
}

// AssistantTemplate is the static assistant note
func AssistantTemplate(ingredients []string, recipeTitle string) string {
	var b strings.Builder
	b.WriteString("🤖 SmartPantry Assistant:\n\n")
	fmt.Fprintf(&b, "Based on your ingredients: %s\n\n", strings.Join(ingredients, ", "))
	fmt.Fprintf(&b, "I recommend: %s\n\n", recipeTitle)
	b.WriteString("This pick covers the largest share of the recipe's ingredients with what you already have.")
	return b.String()
}

// ChefTip returns the hint shown under the pantry, or "" for an empty pantry
func ChefTip(ingredientCount int) string {
	switch {
	case ingredientCount >= 3:
		return "💡 Chef's Tip: You have great ingredients for multiple cuisines!"
	case ingredientCount >= 1:
		return "🔍 Suggestion: Add more ingredients for better recipe matches!"
	default:
		return ""
	}
}

// ScorePercent renders a coverage score as a whole percentage, rounding down
func ScorePercent(score float64) int {
	return int(score * 100)
}

var titleCaser = cases.Title(language.English)

// FormatMatch renders one ranked suggestion as a text card
func FormatMatch(rank int, r models.MatchResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s (%d%% match)\n", rank, r.Title, ScorePercent(r.Score))
	fmt.Fprintf(&b, "⏱️ Time: %d mins · 📊 Difficulty: %s\n", r.CookingTime, titleCaser.String(r.Difficulty))
	if len(r.HaveIngredients) > 0 {
		fmt.Fprintf(&b, "✅ You have: %s\n", strings.Join(r.HaveIngredients, ", "))
	}
	if len(r.MissingIngredients) > 0 {
		fmt.Fprintf(&b, "🛒 You need: %s\n", strings.Join(r.MissingIngredients, ", "))
	}
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, "🏷️ Tags: %s\n", strings.Join(r.Tags, ", "))
	}
	return b.String()
}

// FormatMatches renders the full suggestion list, or NoMatchesText when it is empty
func FormatMatches(results []models.MatchResult) string {
	if len(results) == 0 {
		return NoMatchesText
	}
	cards := make([]string, len(results))
	for i, r := range results {
		cards[i] = FormatMatch(i+1, r)
	}
	return "🔍 Recipe Suggestions\n\n" + strings.Join(cards, "\n")
}

// FormatSteps splits a "1. Do this. 2. Do that." steps string into individual steps.
// Leading numbers are dropped so callers can renumber.
func FormatSteps(steps string) []string {
	parts := strings.Split(steps, ". ")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		part = strings.TrimSuffix(part, ".")
		if part == "" || isNumber(part) {
			continue
		}
		out = append(out, part)
	}
	return out
}

// FormatStepsMessage renders numbered instructions for a recipe
func FormatStepsMessage(title, steps string) string {
	lines := FormatSteps(steps)
	if len(lines) == 0 {
		return fmt.Sprintf("No instructions available for %s.", title)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📋 Instructions for %s:\n", title)
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s\n", i+1, line)
	}
	return b.String()
}

// FormatPantry renders the pantry list with the matching chef's tip
func FormatPantry(ingredients []string) string {
	if len(ingredients) == 0 {
		return EmptyPantryText
	}

	var b strings.Builder
	b.WriteString("📊 Your Pantry\n")
	for _, ing := range ingredients {
		fmt.Fprintf(&b, "• %s\n", ing)
	}
	if tip := ChefTip(len(ingredients)); tip != "" {
		b.WriteString("\n" + tip)
	}
	return b.String()
}

// FormatProfile renders a profile summary
func FormatProfile(p models.Profile) string {
	return fmt.Sprintf("🧑‍🍳 %s\nPreferences: %s\nRestrictions: %s\nIngredients: %s",
		p.Name, p.Preferences, p.DietaryRestrictions, strings.Join(p.Ingredients, ", "))
}

// FormatStats renders catalog statistics
func FormatStats(stats models.CatalogStats) string {
	return fmt.Sprintf("📈 Recipe Stats\nTotal Recipes: %d\nAvg Cook Time: %.0f mins", stats.TotalRecipes, stats.AverageCookingTime)
}

func isNumber(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
