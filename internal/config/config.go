package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Provider identifies an LLM backend for enhanced scoring.
type Provider string

const (
	ProviderNone      Provider = ""
	ProviderOllama    Provider = "ollama"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// Config holds all configuration values.
type Config struct {
	// Enhanced scoring LLM
	LLMProvider     Provider
	LLMModel        string
	OpenAIAPIKey    string
	AnthropicAPIKey string
	OllamaHost      string
	LLMTimeout      time.Duration

	// Data overrides (empty means use the embedded defaults)
	DictionaryPath string
	GenreCatalog   string

	// Logging
	LogFile  string
	LogLevel slog.Level
}

// Load reads configuration from environment variables.
func Load() Config {
	return Config{
		LLMProvider:     Provider(strings.ToLower(getEnv("SCOREBARS_LLM_PROVIDER", ""))),
		LLMModel:        getEnv("SCOREBARS_LLM_MODEL", "gpt-4"),
		OpenAIAPIKey:    getEnv("OPENAI_API_KEY", ""),
		AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
		OllamaHost:      getEnv("OLLAMA_HOST", "http://localhost:11434"),
		LLMTimeout:      parseDuration(getEnv("SCOREBARS_LLM_TIMEOUT", "15s")),

		DictionaryPath: getEnv("SCOREBARS_DICT_FILE", ""),
		GenreCatalog:   getEnv("SCOREBARS_GENRE_FILE", ""),

		LogFile:  getEnv("SCOREBARS_LOG_FILE", "/tmp/scorebars.log"),
		LogLevel: parseLogLevel(getEnv("SCOREBARS_LOG_LEVEL", "INFO")),
	}
}

// EnhancedEnabled reports whether the enhanced scoring collaborator is
// configured. The engine works fully without it.
func (c Config) EnhancedEnabled() bool {
	switch c.LLMProvider {
	case ProviderOllama:
		return true
	case ProviderOpenAI:
		return c.OpenAIAPIKey != ""
	case ProviderAnthropic:
		return c.AnthropicAPIKey != ""
	default:
		return false
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func parseDuration(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(s); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 15 * time.Second
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
