package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

func init() {
	// Load .env file if it exists (silently ignore if not found)
	_ = godotenv.Load()
}

type Config struct {
	// Required
	GeminiAPIKey          string
	GoogleCredentialsFile string
	GoogleTokenFile       string

	// Optional with defaults
	DBPath            string
	HTTPPort          int
	GeminiModel       string
	GeminiTemperature float64
	DefaultTimezone   string
	AnchorDate        string // YYYY-MM-DD, empty means "today"

	// Email confirmations (optional)
	ResendAPIKey   string
	EmailFrom      string
	OrganizerEmail string
}

func LoadFromEnv() *Config {
	cfg := &Config{
		// Required
		GeminiAPIKey:          os.Getenv("GEMINI_API_KEY"),
		GoogleCredentialsFile: getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", "./credentials.json"),
		GoogleTokenFile:       getEnvOrDefault("GOOGLE_TOKEN_FILE", "./token.json"),

		// Optional with defaults
		DBPath:            getEnvOrDefault("MEETWISE_DB_PATH", "./meetwise.db"),
		HTTPPort:          getEnvAsIntOrDefault("MEETWISE_HTTP_PORT", 8080),
		GeminiModel:       getEnvOrDefault("MEETWISE_GEMINI_MODEL", "gemini-1.5-flash"),
		GeminiTemperature: getEnvAsFloatOrDefault("MEETWISE_GEMINI_TEMPERATURE", 0.1),
		DefaultTimezone:   getEnvOrDefault("MEETWISE_DEFAULT_TIMEZONE", "Asia/Kolkata"),
		AnchorDate:        os.Getenv("MEETWISE_ANCHOR_DATE"),

		// Email confirmations
		ResendAPIKey:   os.Getenv("RESEND_API_KEY"),
		EmailFrom:      getEnvOrDefault("MEETWISE_EMAIL_FROM", "meetwise@localhost"),
		OrganizerEmail: os.Getenv("MEETWISE_ORGANIZER_EMAIL"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
