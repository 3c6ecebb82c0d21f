package config

import (
	"log"
	"os"
)

type Config struct {
	Port string

	Provider string // "gpt" | "gemini"

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	GeminiAPIKey string
	GeminiModel  string

	TelegramBotToken string
}

func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8000"),

		Provider: getEnv("LLM_PROVIDER", "gpt"),

		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: os.Getenv("OPENAI_BASE_URL"),

		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}
}

// RequireProviderKey exits when the selected provider has no credential, so
// a misconfigured relay fails at startup instead of on the first request.
func (c *Config) RequireProviderKey() {
	switch c.Provider {
	case "gemini":
		if c.GeminiAPIKey == "" {
			log.Fatalf("missing required env GEMINI_API_KEY")
		}
	default:
		if c.OpenAIAPIKey == "" {
			log.Fatalf("missing required env OPENAI_API_KEY")
		}
	}
}
