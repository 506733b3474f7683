package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type AppConfig struct {
	// Server
	HTTPAddr    string   `validate:"required"`
	Env         string   `validate:"oneof=development production staging test"`
	CORSOrigins []string `validate:"min=1,dive,required"`

	// Logging (empty file logs to stderr only)
	LogFile       string
	LogMaxSizeMB  int `validate:"gte=1"`
	LogMaxBackups int `validate:"gte=0"`
	LogMaxAgeDays int `validate:"gte=0"`

	// Sources
	SourceURL      string        `validate:"omitempty,url"`
	FetchTimeout   time.Duration `validate:"gt=0"`
	MaxSourceBytes int64         `validate:"gt=0"`

	// Redis (empty address keeps the remembered source in memory)
	RedisAddr       string `validate:"omitempty,hostname_port"`
	RedisPass       string
	RedisDB         int           `validate:"gte=0"`
	SourceMemoryTTL time.Duration `validate:"gte=0"`

	// Assistant
	GeminiAPIKey string
	GeminiModel  string `validate:"required"`
}

// Load loads environment variables into AppConfig.
func Load() AppConfig {
	return AppConfig{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8000"),
		Env:         strings.ToLower(getEnv("APP_ENV", "production")),
		CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"*"}),

		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 100),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 30),

		SourceURL:      getEnv("SOURCE_URL", ""),
		FetchTimeout:   getEnvDuration("FETCH_TIMEOUT", 30*time.Second),
		MaxSourceBytes: int64(getEnvInt("MAX_SOURCE_BYTES", 32<<20)),

		RedisAddr:       getEnv("REDIS_ADDR", ""),
		RedisPass:       getEnv("REDIS_PASS", ""),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		SourceMemoryTTL: getEnvDuration("SOURCE_MEMORY_TTL", 720*time.Hour),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
	}
}

// Validate reports every invalid setting at once.
func (c AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func (c AppConfig) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// --- Helper functions ---

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
