package messages

import (
	"context"
	"errors"
	"testing"

	"github.com/korjavin/smartpantry/pkg/models"
	"github.com/stretchr/testify/assert"
)

type stubGenerator struct {
	msg    string
	err    error
	intent string
}

func (g *stubGenerator) GenerateChatMessage(ctx context.Context, intent string, contextData map[string]interface{}) (string, error) {
	g.intent = intent
	return g.msg, g.err
}

func TestFormatSteps(t *testing.T) {
	steps := "1. Wash and soak rice for 30 minutes. 2. Cut chicken into pieces and marinate with salt. 3. Heat oil and fry onions until golden."

	assert.Equal(t, []string{
		"Wash and soak rice for 30 minutes",
		"Cut chicken into pieces and marinate with salt",
		"Heat oil and fry onions until golden",
	}, FormatSteps(steps))

	assert.Empty(t, FormatSteps(""))
	assert.Equal(t, []string{"Toast the bread"}, FormatSteps("Toast the bread."))
}

func TestFormatStepsMessage(t *testing.T) {
	msg := FormatStepsMessage("Cheese Omelette", "1. Beat eggs. 2. Heat butter.")
	assert.Equal(t, "📋 Instructions for Cheese Omelette:\n1. Beat eggs\n2. Heat butter\n", msg)

	assert.Equal(t, "No instructions available for Toast.", FormatStepsMessage("Toast", " "))
}

func TestChefTip(t *testing.T) {
	assert.Equal(t, "", ChefTip(0))
	assert.Contains(t, ChefTip(1), "Add more ingredients")
	assert.Contains(t, ChefTip(2), "Add more ingredients")
	assert.Contains(t, ChefTip(3), "great ingredients")
}

func TestFormatMatch(t *testing.T) {
	card := FormatMatch(1, models.MatchResult{
		Title:              "Palak Paneer",
		Score:              2.0 / 6.0,
		HaveIngredients:    []string{"paneer", "spinach"},
		MissingIngredients: []string{"cream", "garlic", "onion", "tomato"},
		CookingTime:        30,
		Difficulty:         "easy",
		Tags:               []string{"vegetarian", "healthy"},
	})

	assert.Contains(t, card, "1. Palak Paneer (33% match)")
	assert.Contains(t, card, "Difficulty: Easy")
	assert.Contains(t, card, "You have: paneer, spinach")
	assert.Contains(t, card, "You need: cream, garlic, onion, tomato")
	assert.Contains(t, card, "Tags: vegetarian, healthy")
}

func TestFormatMatchesEmpty(t *testing.T) {
	assert.Equal(t, NoMatchesText, FormatMatches(nil))
}

func TestFormatPantry(t *testing.T) {
	assert.Equal(t, EmptyPantryText, FormatPantry(nil))

	text := FormatPantry([]string{"rice", "onion", "tomato"})
	assert.Contains(t, text, "• rice\n")
	assert.Contains(t, text, "Chef's Tip")
}

func TestFormatStats(t *testing.T) {
	assert.Equal(t, "📈 Recipe Stats\nTotal Recipes: 5\nAvg Cook Time: 29 mins", FormatStats(models.CatalogStats{TotalRecipes: 5, AverageCookingTime: 29}))
}

func TestAssistantResponse(t *testing.T) {
	ctx := context.Background()
	ingredients := []string{"rice", "onion"}

	svc := New(nil)
	assert.Equal(t, AssistantTemplate(ingredients, "Dal Rice Bowl"), svc.AssistantResponse(ctx, ingredients, "Dal Rice Bowl"))

	gen := &stubGenerator{msg: "Cook the dal!"}
	svc = New(gen)
	assert.Equal(t, "Cook the dal!", svc.AssistantResponse(ctx, ingredients, "Dal Rice Bowl"))
	assert.Equal(t, "assistant_response", gen.intent)

	svc = New(&stubGenerator{err: errors.New("quota exceeded")})
	assert.Contains(t, svc.AssistantResponse(ctx, ingredients, "Dal Rice Bowl"), "I recommend: Dal Rice Bowl")
}
