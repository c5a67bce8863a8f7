package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "file:braintalk.db", cfg.DBPath)
	assert.Equal(t, "INFO", cfg.LogLevel)
	assert.Equal(t, "https://api.openai.com/v1", cfg.TranscribeBaseURL)
	assert.Equal(t, "whisper-1", cfg.TranscribeModel)
	assert.Equal(t, "ko", cfg.TranscribeLanguage)
	assert.Equal(t, 30*time.Second, cfg.TranscribeTimeout)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TRANSCRIBE_TIMEOUT", "45s")

	cfg := Load()
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 45*time.Second, cfg.TranscribeTimeout)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	t.Setenv("TRANSCRIBE_TIMEOUT", "not-a-duration")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.TranscribeTimeout)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Addr:              ":8080",
		DBPath:            "file:test.db",
		TranscribeBaseURL: "https://api.openai.com/v1",
		TranscribeTimeout: 30 * time.Second,
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Addr = "" }},
		{"empty db path", func(c *Config) { c.DBPath = "" }},
		{"empty transcribe base url", func(c *Config) { c.TranscribeBaseURL = "" }},
		{"zero transcribe timeout", func(c *Config) { c.TranscribeTimeout = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestEnvIntOr(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	assert.Equal(t, 42, envIntOr("SOME_INT", 7))

	t.Setenv("SOME_INT", "nope")
	assert.Equal(t, 7, envIntOr("SOME_INT", 7))

	assert.Equal(t, 7, envIntOr("UNSET_INT", 7))
}
