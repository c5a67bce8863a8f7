package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr     string
	DBPath   string
	LogLevel string

	// Transcription proxy (OpenAI-compatible speech-to-text endpoint).
	TranscribeBaseURL  string
	TranscribeAPIKey   string
	TranscribeModel    string
	TranscribeLanguage string
	TranscribeTimeout  time.Duration
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:braintalk.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		TranscribeBaseURL:  envOr("TRANSCRIBE_BASE_URL", "https://api.openai.com/v1"),
		TranscribeAPIKey:   envOr("TRANSCRIBE_API_KEY", ""),
		TranscribeModel:    envOr("TRANSCRIBE_MODEL", "whisper-1"),
		TranscribeLanguage: envOr("TRANSCRIBE_LANGUAGE", "ko"),
		TranscribeTimeout:  envDurationOr("TRANSCRIBE_TIMEOUT", 30*time.Second),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if c.TranscribeBaseURL == "" {
		return fmt.Errorf("TRANSCRIBE_BASE_URL must not be empty")
	}
	if c.TranscribeTimeout <= 0 {
		return fmt.Errorf("TRANSCRIBE_TIMEOUT must be positive, got %s", c.TranscribeTimeout)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurationOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %s", key, v, def)
	}
	return def
}
