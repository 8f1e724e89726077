package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	DatabaseType    string // sqlite, postgres, mysql
	DatabasePath    string // used for sqlite
	DatabaseURL     string // used for postgres/mysql
	SessionDuration time.Duration
	StaticFilesPath string
	MigrationsPath  string
	DraftsPath      string
	AudioCachePath  string

	// Synthetic email domain for child accounts created without a real
	// address.
	AccountEmailDomain string

	// BaseURL is the externally reachable origin, used in share links
	// and password reset emails.
	BaseURL string

	// ShareTokenSecret signs board/schedule share tokens. CSRFSecret
	// signs per-session CSRF tokens. Both fall back to generated values
	// when unset, which invalidates outstanding tokens on restart.
	ShareTokenSecret string
	ShareTokenTTL    time.Duration
	CSRFSecret       string

	// AWS SES email settings. Email features are disabled when
	// SESFromEmail is empty.
	SESFromEmail string
	AWSRegion    string

	// Google OAuth for therapist/parent sign-in.
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	return &Config{
		ServerPort:         getEnv("PORT", "8080"),
		DatabaseType:       getEnv("DB_TYPE", "sqlite"),
		DatabasePath:       getEnv("DB_PATH", "./chitraboard.db"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		SessionDuration:    getDuration("SESSION_DURATION", 24*time.Hour),
		StaticFilesPath:    getEnv("STATIC_PATH", "./static"),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "./migrations"),
		DraftsPath:         getEnv("DRAFTS_PATH", "./drafts"),
		AudioCachePath:     getEnv("AUDIO_CACHE_PATH", "./static/audio"),
		AccountEmailDomain: getEnv("ACCOUNT_EMAIL_DOMAIN", "accounts.chitraboard.local"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		ShareTokenSecret:   getEnv("SHARE_TOKEN_SECRET", ""),
		ShareTokenTTL:      getDuration("SHARE_TOKEN_TTL", 30*24*time.Hour),
		CSRFSecret:         getEnv("CSRF_SECRET", ""),
		SESFromEmail:       getEnv("SES_FROM_EMAIL", ""),
		AWSRegion:          getEnv("AWS_REGION", "ap-south-1"),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration reads a duration environment variable or returns a default value
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Warning: invalid %s=%q, using default %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
