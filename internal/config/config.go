package config

import (
	"fmt"
	"geo-forensics-service/internal/domain"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultPort           = "8080"
	DefaultGeminiModel    = "gemini-2.5-flash"
	DefaultVisionCooldown = 1500 * time.Millisecond
	DefaultCachePath      = "file:landmarks?mode=memory&cache=shared"
)

// Runtime configuration for the server, CLI, and DB tool.
type Config struct {
	Port           string
	GeminiAPIKey   string
	GeminiModel    string
	VisionCooldown time.Duration
	DatabaseURL    string
	CachePath      string
	LogLevel       string
	LogFormat      string
}

// fileConfig mirrors Config in the YAML file. Durations stay strings so the
// file accepts the same "1500ms" syntax as the environment.
type fileConfig struct {
	Port           string `yaml:"port"`
	GeminiAPIKey   string `yaml:"gemini_api_key"`
	GeminiModel    string `yaml:"gemini_model"`
	VisionCooldown string `yaml:"vision_cooldown"`
	DatabaseURL    string `yaml:"database_url"`
	CachePath      string `yaml:"cache_path"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from defaults, an optional YAML file at path, and the
// process environment, in increasing order of precedence.
// A missing Gemini key is not an error here; see RequireGemini.
func Load(path string) (Config, error) {
	fc := fileConfig{
		Port:        DefaultPort,
		GeminiModel: DefaultGeminiModel,
		CachePath:   DefaultCachePath,
		LogLevel:    "info",
		LogFormat:   "text",
	}

	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("load config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(raw, &fc); err != nil {
			return Config{}, fmt.Errorf("load config: parse %q: %w", path, err)
		}
	}

	fc.Port = Get("PORT", fc.Port)
	fc.GeminiAPIKey = Get("GEMINI_API_KEY", fc.GeminiAPIKey)
	fc.GeminiModel = Get("GEMINI_MODEL", fc.GeminiModel)
	fc.VisionCooldown = Get("VISION_COOLDOWN", fc.VisionCooldown)
	fc.DatabaseURL = Get("DATABASE_URL", fc.DatabaseURL)
	fc.CachePath = Get("CACHE_PATH", fc.CachePath)
	fc.LogLevel = Get("LOG_LEVEL", fc.LogLevel)
	fc.LogFormat = Get("LOG_FORMAT", fc.LogFormat)

	cooldown := DefaultVisionCooldown
	if fc.VisionCooldown != "" {
		d, err := time.ParseDuration(fc.VisionCooldown)
		if err != nil {
			return Config{}, fmt.Errorf("load config: VISION_COOLDOWN %q: %w", fc.VisionCooldown, err)
		}
		if d < 0 {
			return Config{}, fmt.Errorf("load config: VISION_COOLDOWN must not be negative, got %s", d)
		}
		cooldown = d
	}

	return Config{
		Port:           fc.Port,
		GeminiAPIKey:   strings.TrimSpace(fc.GeminiAPIKey),
		GeminiModel:    fc.GeminiModel,
		VisionCooldown: cooldown,
		DatabaseURL:    fc.DatabaseURL,
		CachePath:      fc.CachePath,
		LogLevel:       fc.LogLevel,
		LogFormat:      fc.LogFormat,
	}, nil
}

// RequireGemini reports a ConfigError when no Gemini API key is configured.
func (c Config) RequireGemini() error {
	if c.GeminiAPIKey == "" {
		return &domain.ConfigError{Key: "GEMINI_API_KEY"}
	}
	return nil
}
