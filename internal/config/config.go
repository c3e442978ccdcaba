package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string // "sqlite" (default), "postgres", "mysql"
	DatabasePath   string // sqlite file path
	DatabaseURL    string // postgres/mysql connection string
	MigrationsPath string

	SessionDuration time.Duration

	// Practice session tuning. The per-question time budget and the
	// standard-mode sample cap are configurable rather than baked-in.
	PracticeSecondsPerQuestion int
	PracticeSampleSize         int
	GenerationBatchSize        int

	// OpenAI question generation
	OpenAIAPIKey string

	// Google OAuth sign-in
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// Email via Amazon SES (disabled when SESFromEmail is empty)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string
	EmailDebug   bool
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabasePath:   getEnv("DB_PATH", "./examsphere.db"),
		DatabaseURL:    getEnv("DB_URL", ""),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),

		SessionDuration: 24 * time.Hour,

		PracticeSecondsPerQuestion: getEnvInt("PRACTICE_SECONDS_PER_QUESTION", 60),
		PracticeSampleSize:         getEnvInt("PRACTICE_SAMPLE_SIZE", 10),
		GenerationBatchSize:        getEnvInt("GENERATION_BATCH_SIZE", 10),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", ""),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "ExamSphere"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),
		EmailDebug:   getEnv("EMAIL_DEBUG", "") == "true",
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads a positive integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}
