package config

import (
	"errors"
	"geo-forensics-service/internal/domain"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "GEMINI_API_KEY", "GEMINI_MODEL", "VISION_COOLDOWN",
		"DATABASE_URL", "CACHE_PATH", "LOG_LEVEL", "LOG_FORMAT",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultGeminiModel, cfg.GeminiModel)
	assert.Equal(t, DefaultVisionCooldown, cfg.VisionCooldown)
	assert.Equal(t, DefaultCachePath, cfg.CachePath)
	assert.Empty(t, cfg.DatabaseURL)

	err = cfg.RequireGemini()
	var ce *domain.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "GEMINI_API_KEY", ce.Key)
	assert.ErrorIs(t, err, domain.ErrServiceUnavailable)
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "geoforensics.yaml")
	body := "port: \"9090\"\ngemini_model: gemini-2.0-flash\nvision_cooldown: 250ms\nlog_format: json\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	t.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	t.Setenv("GEMINI_API_KEY", " secret ")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "gemini-2.5-pro", cfg.GeminiModel, "environment overrides the file")
	assert.Equal(t, 250*time.Millisecond, cfg.VisionCooldown)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.NoError(t, cfg.RequireGemini())
}

func TestLoadRejectsBadCooldown(t *testing.T) {
	clearEnv(t)

	t.Setenv("VISION_COOLDOWN", "soon")
	_, err := Load("")
	assert.ErrorContains(t, err, "VISION_COOLDOWN")

	t.Setenv("VISION_COOLDOWN", "-1s")
	_, err = Load("")
	assert.ErrorContains(t, err, "must not be negative")
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
