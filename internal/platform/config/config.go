// Package config centralises environment configuration for the API.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config captures runtime configuration values for the API process.
type Config struct {
	HTTPAddress string

	// StorageBackend selects the repository adapters: "memory" or "postgres".
	StorageBackend string
	DatabaseURL    string

	TokenSecret string
	TokenIssuer string
	TokenTTL    time.Duration

	// KafkaBrokers enables the activity event publisher when non-empty.
	KafkaBrokers []string
	KafkaTopic   string

	// UploadDir/UploadBaseURL configure the local image store.
	UploadDir      string
	UploadBaseURL  string
	MaxUploadBytes int64
}

// Load reads environment variables into Config, applying defaults that make
// local development predictable.
func Load() (Config, error) {
	cfg := Config{
		HTTPAddress:    getEnv("HTTP_ADDRESS", ":8080"),
		StorageBackend: strings.ToLower(getEnv("STORAGE_BACKEND", "memory")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		TokenSecret:    getEnv("TOKEN_SECRET", ""),
		TokenIssuer:    getEnv("TOKEN_ISSUER", "hobby-directory"),
		TokenTTL:       getDurationEnv("TOKEN_TTL", 24*time.Hour),
		KafkaTopic:     getEnv("KAFKA_TOPIC", ""),
		UploadDir:      getEnv("UPLOAD_DIR", ""),
		UploadBaseURL:  getEnv("UPLOAD_BASE_URL", "/uploads"),
		MaxUploadBytes: getInt64Env("MAX_UPLOAD_BYTES", 5<<20),
	}

	if brokers := strings.TrimSpace(os.Getenv("KAFKA_BROKERS")); brokers != "" {
		cfg.KafkaBrokers = splitAndTrim(brokers)
	}

	if cfg.TokenSecret == "" {
		return Config{}, fmt.Errorf("missing required env var TOKEN_SECRET")
	}
	if cfg.StorageBackend == "postgres" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DATABASE_URL")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt64Env(key string, fallback int64) int64 {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
