package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	Port     string
	Env      string
	MongoURI string

	// Cross-origin policy applied to the REST surface.
	CORSOrigins []string
	CORSMethods []string
}

// Load reads configuration from environment variables.
// In development, it loads from .env file if present.
func Load() *Config {
	// Load .env file if it exists (for development)
	_ = godotenv.Load()

	return &Config{
		Port:        getEnv("PORT", "3001"),
		Env:         getEnv("ENV", "development"),
		MongoURI:    getEnv("MONGODB_URI", "mongodb://localhost:27017/chat"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		CORSMethods: splitList(getEnv("CORS_METHODS", "GET,POST")),
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
