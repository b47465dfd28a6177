package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings, loaded from the environment.
type Config struct {
	Port        string
	DatabaseURL string

	XAIAPIKey  string
	XAIBaseURL string
	XAIModel   string

	JWTSecret string

	TranslationEnabled bool

	MigrationsPath string
	AllowedOrigins []string
}

// Load reads configuration from the environment. A .env file is loaded
// first if present, for local development.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        os.Getenv("DATABASE_URL"),
		XAIAPIKey:          os.Getenv("XAI_API_KEY"),
		XAIBaseURL:         getEnv("XAI_BASE_URL", "https://api.x.ai/v1"),
		XAIModel:           getEnv("XAI_MODEL", "grok"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		TranslationEnabled: getEnvBool("TRANSLATION_ENABLED", true),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "internal/db/migrations"),
		AllowedOrigins:     splitList(os.Getenv("ALLOWED_ORIGINS")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.XAIAPIKey == "" {
		return fmt.Errorf("XAI_API_KEY is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
