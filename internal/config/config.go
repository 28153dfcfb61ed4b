package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env           string
	Port          string
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	CORSOrigins   []string
	// AdminDualWrite selects the admin provisioning strategy: when true,
	// creating an Admin also inserts a matching role-admin User document.
	AdminDualWrite bool
	TextbeltAPIKey string
}

// Load reads configuration from the environment, optionally seeded from a
// .env file, and validates the required values at startup.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Env:            getEnv("APP_ENV", "development"),
		Port:           getEnv("API_PORT", "3000"),
		MongoURI:       getEnv("MONGO_URI", ""),
		MongoDatabase:  getEnv("MONGO_DATABASE", "destinationWedding"),
		JWTSecret:      getEnv("JWT_SECRET", ""),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		AdminDualWrite: strings.EqualFold(getEnv("ADMIN_DUAL_WRITE", "false"), "true"),
		TextbeltAPIKey: getEnv("TEXTBELT_API_KEY", ""),
	}

	if cfg.MongoURI == "" {
		return nil, fmt.Errorf("MONGO_URI is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok && val != "" {
		return val
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
