package revizia

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings shared by the binaries.
type Config struct {
	Addr             string
	DBPath           string
	LogDir           string
	AIProvider       string // "gemini" or "openai"
	GeminiAPIKey     string
	OpenAIAPIKey     string
	DefaultQuestions int
	DefaultLevel     string
	Verbose          bool
}

// LoadConfig reads configuration from a .env file (if present) and
// environment variables, applying defaults when values are missing.
func LoadConfig() Config {
	// Ignore error so the app still starts when .env is absent.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8180"),
		DBPath:           envOr("DB_PATH", "./revizia.db"),
		LogDir:           envOr("LOG_DIR", "log"),
		AIProvider:       envOr("AI_PROVIDER", "gemini"),
		GeminiAPIKey:     os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		DefaultQuestions: envIntOr("DEFAULT_QUESTIONS", 5),
		DefaultLevel:     envOr("DEFAULT_LEVEL", "Terminale"),
		Verbose:          envOr("VERBOSE", "") != "",
	}
}

// NewTextGenerator builds the configured AI client, or nil when no API key is
// set for the chosen provider. A nil client keeps the generator on the
// fallback path with no network calls.
func (c Config) NewTextGenerator() TextGenerator {
	switch c.AIProvider {
	case "openai":
		if c.OpenAIAPIKey == "" {
			return nil
		}
		return NewOpenAIClient(c.OpenAIAPIKey)
	default:
		if c.GeminiAPIKey == "" {
			return nil
		}
		return NewGeminiClient(c.GeminiAPIKey)
	}
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
