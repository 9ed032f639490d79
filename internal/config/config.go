// Package config loads runtime configuration from the environment. Secrets
// (API keys) are read at startup and never written back.
package config

import (
	"os"
	"strconv"
)

// Config holds runtime configuration for the concierge service.
type Config struct {
	// Provider selects the model transport: "openai" (default) or "anthropic".
	Provider string
	// Model overrides the provider's default model id when set.
	Model string
	// OpenAIAPIKey is read by the OpenAI SDK from OPENAI_API_KEY; kept here
	// only to fail fast when missing.
	OpenAIAPIKey string
	// AnthropicAPIKey mirrors ANTHROPIC_API_KEY for the anthropic provider.
	AnthropicAPIKey string
	// RetrievalK is the number of matches requested per turn (default 1).
	RetrievalK int
	// BookingDBPath is the SQLite file for booking records. Empty uses an
	// in-memory store with no records.
	BookingDBPath string
	// SourcesPath is the flat JSON file seeding the retrieval index.
	SourcesPath string
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
	// LogFormat is "json" or "text".
	LogFormat string
}

// FromEnv builds a Config from CONCIERGE_* environment variables plus the
// SDK-standard key variables.
func FromEnv() *Config {
	cfg := &Config{
		Provider:        getenv("CONCIERGE_PROVIDER", "openai"),
		Model:           os.Getenv("CONCIERGE_MODEL"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		RetrievalK:      getenvInt("CONCIERGE_RETRIEVAL_K", 1),
		BookingDBPath:   os.Getenv("CONCIERGE_BOOKING_DB"),
		SourcesPath:     getenv("CONCIERGE_SOURCES", "sources.json"),
		LogLevel:        getenv("CONCIERGE_LOG_LEVEL", "info"),
		LogFormat:       getenv("CONCIERGE_LOG_FORMAT", "text"),
	}
	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
