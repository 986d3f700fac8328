package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort   string
	LogLevel  slog.Level
	LogFormat string // "text" or "json"

	// Reasoning model (Groq, OpenAI-compatible).
	ReasoningAPIKey      string
	ReasoningBaseURL     string
	ReasoningModel       string
	ReasoningMaxTokens   int
	ReasoningTemperature float32
	ChatMaxRetries       int
	ChatRetryDelay       time.Duration

	// Vision model. An empty key selects local OCR for images.
	VisionAPIKey     string
	VisionBaseURL    string
	VisionModel      string
	VisionMaxRetries int
	VisionRetryStep  time.Duration

	OCRLanguages []string

	// ExtractionCachePath is the SQLite file for cached extractions. Empty disables the cache.
	ExtractionCachePath   string
	ExtractionCacheMaxAge time.Duration

	PlainTextReplies bool
	MaxUploadBytes   int64
	UploadDir        string
}

// Defaults applied when the matching environment variable is unset.
const (
	DefaultReasoningBaseURL   = "https://api.groq.com/openai/v1"
	DefaultReasoningModel     = "llama-3.3-70b-versatile"
	DefaultReasoningMaxTokens = 4096
	DefaultReasoningTemp      = 0.3
	DefaultChatMaxRetries     = 3
	DefaultChatRetryDelay     = 3 * time.Second
	DefaultVisionBaseURL      = "https://api.openai.com/v1/"
	DefaultVisionModel        = "gpt-4o-mini"
	DefaultVisionMaxRetries   = 2
	DefaultVisionRetryStep    = 2 * time.Second
)

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates numeric values.
// If a .env file exists in the current directory or project root, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	// Check current directory first, then walk up to find project root
	_ = godotenv.Load() // Try current directory

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break // Reached filesystem root
			}
			dir = parent
		}
	}

	cfg := &Config{
		APIPort:             getEnv("API_PORT", "9000"),
		LogFormat:           strings.ToLower(getEnv("LOG_FORMAT", "text")),
		ReasoningAPIKey:     getEnv("GROQ_API_KEY", ""),
		ReasoningBaseURL:    getEnv("REASONING_BASE_URL", DefaultReasoningBaseURL),
		ReasoningModel:      getEnv("REASONING_MODEL", DefaultReasoningModel),
		VisionAPIKey:        getEnv("VISION_API_KEY", ""),
		VisionBaseURL:       getEnv("VISION_BASE_URL", DefaultVisionBaseURL),
		VisionModel:         getEnv("VISION_MODEL", DefaultVisionModel),
		OCRLanguages:        parseList(getEnv("OCR_LANGUAGES", "ara+eng")),
		ExtractionCachePath: getEnv("EXTRACTION_CACHE_PATH", ""),
		UploadDir:           getEnv("UPLOAD_DIR", os.TempDir()),
	}

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}

	if cfg.ReasoningMaxTokens, err = getInt("REASONING_MAX_TOKENS", DefaultReasoningMaxTokens, 1); err != nil {
		return nil, err
	}
	if cfg.ChatMaxRetries, err = getInt("CHAT_MAX_RETRIES", DefaultChatMaxRetries, 0); err != nil {
		return nil, err
	}
	if cfg.VisionMaxRetries, err = getInt("VISION_MAX_RETRIES", DefaultVisionMaxRetries, 0); err != nil {
		return nil, err
	}

	temperature, err := strconv.ParseFloat(getEnv("REASONING_TEMPERATURE", strconv.FormatFloat(DefaultReasoningTemp, 'f', -1, 32)), 32)
	if err != nil {
		return nil, fmt.Errorf("REASONING_TEMPERATURE must be a valid number: %w", err)
	}
	if temperature < 0 || temperature > 2 {
		return nil, fmt.Errorf("REASONING_TEMPERATURE must be between 0 and 2")
	}
	cfg.ReasoningTemperature = float32(temperature)

	if cfg.ChatRetryDelay, err = getDuration("CHAT_RETRY_DELAY", DefaultChatRetryDelay); err != nil {
		return nil, err
	}
	if cfg.VisionRetryStep, err = getDuration("VISION_RETRY_STEP", DefaultVisionRetryStep); err != nil {
		return nil, err
	}
	if cfg.ExtractionCacheMaxAge, err = getDuration("EXTRACTION_CACHE_MAX_AGE", 30*24*time.Hour); err != nil {
		return nil, err
	}

	maxUpload, err := getInt("MAX_UPLOAD_BYTES", 20<<20, 1)
	if err != nil {
		return nil, err
	}
	cfg.MaxUploadBytes = int64(maxUpload)

	if cfg.PlainTextReplies, err = getBool("PLAIN_TEXT_REPLIES", false); err != nil {
		return nil, err
	}

	if len(cfg.OCRLanguages) == 0 {
		return nil, fmt.Errorf("OCR_LANGUAGES must name at least one language")
	}

	return cfg, nil
}

// VisionEnabled reports whether images are described by the vision model
// instead of local OCR.
func (c *Config) VisionEnabled() bool {
	return c.VisionAPIKey != ""
}

// CacheEnabled reports whether extracted text is cached.
func (c *Config) CacheEnabled() bool {
	return c.ExtractionCachePath != ""
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt parses an integer variable and checks it is at least min.
func getInt(key string, defaultValue, min int) (int, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	if v < min {
		return 0, fmt.Errorf("%s must be at least %d", key, min)
	}
	return v, nil
}

// getDuration parses a Go duration such as "3s". Negative values are rejected.
func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func getBool(key string, defaultValue bool) (bool, error) {
	s := getEnv(key, "")
	if s == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean: %w", key, err)
	}
	return b, nil
}

// parseList splits "ara+eng" or "ara,eng" into its parts.
func parseList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ','
	})
	out := fields[:0]
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}
