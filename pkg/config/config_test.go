package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvDefaults(t *testing.T) {
	for _, key := range []string{"DATA_DIR", "CATALOG_PATH", "TOP_N", "HTTP_ADDR", "BOT_TOKEN", "OPENAI_API_KEY", "INGREDIENT_DELIMITER"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, ";", cfg.IngredientDelimiter)
	assert.Equal(t, 3, cfg.TopN)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.False(t, cfg.AIEnabled())
	assert.Error(t, cfg.RequireBotToken())
}

func TestLoadFromEnvOverrides(t *testing.T) {
	t.Setenv("TOP_N", "5")
	t.Setenv("CATALOG_PATH", "/srv/recipes.csv")
	t.Setenv("BOT_TOKEN", "123456789:secret-token")
	t.Setenv("OPENAI_API_KEY", "sk-abcdefghijkl")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.TopN)
	assert.Equal(t, "/srv/recipes.csv", cfg.CatalogPath)
	assert.NoError(t, cfg.RequireBotToken())
	assert.True(t, cfg.AIEnabled())

	redacted := cfg.Redacted()
	assert.Equal(t, "12345678...REDACTED...", redacted.BotToken)
	assert.Equal(t, "sk-abcde...REDACTED...", redacted.OpenAIAPIKey)
	assert.Equal(t, "123456789:secret-token", cfg.BotToken)
}

func TestLoadFromEnvRejectsBadTopN(t *testing.T) {
	t.Setenv("TOP_N", "many")
	_, err := LoadFromEnv()
	assert.Error(t, err)

	t.Setenv("TOP_N", "0")
	_, err = LoadFromEnv()
	assert.Error(t, err)
}
