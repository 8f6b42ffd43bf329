package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// environment keys read by cuedit
const (
	EnvAddr            = "CUEDIT_ADDR"
	EnvShutdownTimeout = "CUEDIT_SHUTDOWN_TIMEOUT"
	EnvMetrics         = "CUEDIT_METRICS"
	EnvGeminiKey       = "GEMINI_API_KEY"
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvAnthropicKey    = "ANTHROPIC_API_KEY"
)

// Load reads the .env file from the current working directory and sets
// environment variables. If .env does not exist, Load returns an error but
// callers can ignore it and use system env or defaults. Pass one or more paths
// to load from specific files (e.g. ".env"); with no paths, ".env" is used.
func Load(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	return godotenv.Load(paths...)
}

// GetEnv returns the value of the environment variable named by key, or fallback
// if the variable is unset or empty.
func GetEnv(key, fallback string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return fallback
}

// GetEnvInt returns the integer value of the environment variable named by key,
// or fallback if the variable is unset, empty, or not a valid integer.
func GetEnvInt(key string, fallback int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

// GetEnvBool is GetEnvInt for strconv.ParseBool values.
func GetEnvBool(key string, fallback bool) bool {
	if s := os.Getenv(key); s != "" {
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	}
	return fallback
}

// ShutdownTimeout is CUEDIT_SHUTDOWN_TIMEOUT in seconds, 10 by default.
func ShutdownTimeout() time.Duration {
	return time.Duration(GetEnvInt(EnvShutdownTimeout, 10)) * time.Second
}

// APIKey returns the key configured for a translation provider.
func APIKey(provider string) string {
	switch provider {
	case "gemini":
		return os.Getenv(EnvGeminiKey)
	case "openai":
		return os.Getenv(EnvOpenAIKey)
	case "anthropic":
		return os.Getenv(EnvAnthropicKey)
	default:
		return ""
	}
}
