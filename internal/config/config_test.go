package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() *Config {
	return &Config{
		GoEnv:          "development",
		HTTPPort:       8080,
		DatabaseURL:    "postgres://localhost:5432/anitakes",
		JWTSecret:      "test-secret-key-that-is-long-enough",
		TokenTTL:       time.Hour,
		RedisURL:       "redis://localhost:6379",
		MediaUploadURL: "https://media.example.com",
		MediaRateLimit: 5,
		LogLevel:       "info",
		LogFormat:      "text",
		CORSOrigins:    []string{"http://localhost:3000"},
	}
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/anitakes")
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough")
	t.Setenv("MEDIA_UPLOAD_URL", "https://media.example.com")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("TOKEN_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "http://localhost:3000, https://anitakes.example.com")

	cfg, err := LoadConfig()

	assert.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTPPort)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, []string{"http://localhost:3000", "https://anitakes.example.com"}, cfg.CORSOrigins)
	// defaults fill in the rest
	assert.Equal(t, "development", cfg.GoEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5.0, cfg.MediaRateLimit)
}

func TestLoadConfig_MissingRequired(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough")
	t.Setenv("MEDIA_UPLOAD_URL", "https://media.example.com")

	cfg, err := LoadConfig()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/anitakes")
	t.Setenv("JWT_SECRET", "test-secret-key-that-is-long-enough")
	t.Setenv("MEDIA_UPLOAD_URL", "https://media.example.com")
	t.Setenv("TOKEN_TTL", "one hour")

	cfg, err := LoadConfig()

	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_BadPort(t *testing.T) {
	cfg := validConfig()
	cfg.HTTPPort = 0

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP_PORT")
}

func TestValidate_ShortSecret(t *testing.T) {
	cfg := validConfig()
	cfg.JWTSecret = "short"

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_BadLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "verbose"

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "LOG_LEVEL")
}

func TestValidate_NegativeTTL(t *testing.T) {
	cfg := validConfig()
	cfg.TokenTTL = -time.Minute

	err := cfg.Validate()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestEnvironmentHelpers(t *testing.T) {
	cfg := validConfig()
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())

	cfg.GoEnv = "production"
	assert.True(t, cfg.IsProduction())
	assert.False(t, cfg.IsDevelopment())
}
