package config

import (
	"os"
	"strconv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Server
	Port    string
	AppName string

	// Database. Empty means run on the in-memory store.
	DatabaseURL string

	// OpenAI
	OpenAIBaseURL      string
	OpenAIAPIKey       string
	EmbedModel         string
	EmbeddingDimension int
	ChatModel          string
	OpenAITimeout      int // seconds

	// Brave web search
	BraveAPIKey      string
	WebSearchTimeout int // milliseconds, per call

	// Corpus
	DocsDir string

	// Frontend
	FrontendURL string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:    envOrDefault("PORT", "3001"),
		AppName: envOrDefault("APP_NAME", "Oracle Server"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		OpenAIBaseURL:      envOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIAPIKey:       os.Getenv("OPENAI_API_KEY"),
		EmbedModel:         envOrDefault("OPENAI_EMBED_MODEL", "text-embedding-3-large"),
		EmbeddingDimension: envOrDefaultInt("EMBEDDING_DIMENSION", 3072),
		ChatModel:          envOrDefault("OPENAI_CHAT_MODEL", "gpt-4o"),
		OpenAITimeout:      envOrDefaultInt("OPENAI_TIMEOUT_SECONDS", 30),

		BraveAPIKey:      os.Getenv("BRAVE_API_KEY"),
		WebSearchTimeout: envOrDefaultInt("WEB_SEARCH_TIMEOUT_MS", 3000),

		DocsDir: envOrDefault("DOCS_DIR", "./documents"),

		FrontendURL: envOrDefault("FRONTEND_URL", "http://localhost:3000"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return fallback
}
