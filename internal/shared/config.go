package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all process configuration. Loaded once at startup from the
// environment (a local .env is honored first) and immutable afterwards;
// credentials are handed to components at construction, never read ambiently.
type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	ProviderBase   string
	ProviderKey    string
	GeminiKey      string
	GeminiModel    string
	FetchTimeout   time.Duration
	ComposeTimeout time.Duration
}

func Load() Config {
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		ProviderBase:   env("RENTCAST_BASE_URL", "https://api.rentcast.io/v1"),
		ProviderKey:    env("RENTCAST_API_KEY", ""),
		GeminiKey:      env("GEMINI_API_KEY", ""),
		GeminiModel:    env("GEMINI_MODEL", "gemini-2.0-flash"),
		FetchTimeout:   time.Duration(atoi("FETCH_TIMEOUT_SECONDS", 20)) * time.Second,
		ComposeTimeout: time.Duration(atoi("COMPOSE_TIMEOUT_SECONDS", 30)) * time.Second,
	}
	if c.ProviderKey == "" {
		log.Warn().Msg("RENTCAST_API_KEY is empty; live lookups will fail as unauthorized")
	}
	if c.GeminiKey == "" {
		log.Info().Msg("GEMINI_API_KEY is empty; memos will use the template fallback")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
