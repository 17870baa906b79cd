package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	LogLevel      string
	LogFormat     string
	FlashDuration time.Duration
	UmpireToken   string
	CORSOrigins   []string
	DevMode       bool
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables still apply.
	_ = godotenv.Load()

	flash, err := time.ParseDuration(getEnv("FLASH_DURATION", "400ms"))
	if err != nil {
		return nil, fmt.Errorf("invalid FLASH_DURATION: %w", err)
	}
	if flash <= 0 {
		return nil, fmt.Errorf("FLASH_DURATION must be positive, got %s", flash)
	}

	cfg := &Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		FlashDuration: flash,
		UmpireToken:   getEnv("UMPIRE_TOKEN", ""),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		DevMode:       getEnv("DEV_MODE", "") == "true",
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
