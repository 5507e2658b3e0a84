package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/korjavin/smartpantry/pkg/logger"
)

// Config holds all configuration for the application
type Config struct {
	// Data sources
	DataDir             string
	CatalogPath         string
	ProfilesPath        string
	IngredientDelimiter string

	// Matching
	TopN int

	// HTTP API
	HTTPAddr string

	// Logging
	LogLevel  string
	LogFormat string

	// Telegram Bot configuration
	BotToken string

	// OpenAI configuration, optional
	OpenAIAPIBase string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logger.Global.Warn("Error loading .env file: %v", err)
	}

	cfg := &Config{
		DataDir:             getEnvWithDefault("DATA_DIR", "./data"),
		CatalogPath:         os.Getenv("CATALOG_PATH"),
		ProfilesPath:        os.Getenv("PROFILES_PATH"),
		IngredientDelimiter: getEnvWithDefault("INGREDIENT_DELIMITER", ";"),
		HTTPAddr:            getEnvWithDefault("HTTP_ADDR", ":8080"),
		LogLevel:            getEnvWithDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvWithDefault("LOG_FORMAT", "console"),
		BotToken:            os.Getenv("BOT_TOKEN"),
		OpenAIAPIKey:        os.Getenv("OPENAI_API_KEY"),
		OpenAIAPIBase:       getEnvWithDefault("OPENAI_API_BASE", "https://api.openai.com/v1"),
		OpenAIModel:         getEnvWithDefault("OPENAI_MODEL", "gpt-3.5-turbo"),
	}

	topN, err := strconv.Atoi(getEnvWithDefault("TOP_N", "3"))
	if err != nil {
		return nil, fmt.Errorf("TOP_N must be an integer: %w", err)
	}
	if topN < 1 {
		return nil, fmt.Errorf("TOP_N must be at least 1, got %d", topN)
	}
	cfg.TopN = topN

	if strings.TrimSpace(cfg.IngredientDelimiter) == "" {
		return nil, fmt.Errorf("INGREDIENT_DELIMITER must not be blank")
	}

	return cfg, nil
}

// RequireBotToken returns an error when the Telegram bot token is missing
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN environment variable is required")
	}
	return nil
}

// AIEnabled reports whether an OpenAI key was configured
func (c *Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

// Redacted returns a copy safe for logging
func (c Config) Redacted() Config {
	c.BotToken = redact(c.BotToken)
	c.OpenAIAPIKey = redact(c.OpenAIAPIKey)
	return c
}

func redact(secret string) string {
	if len(secret) > 8 {
		return secret[:8] + "...REDACTED..."
	}
	if secret != "" {
		return "REDACTED"
	}
	return ""
}

// getEnvWithDefault returns the value of the environment variable or the default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
