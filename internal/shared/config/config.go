package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"summarizer-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	DatabaseURL     string
	Env             string
	AuthJWTSecret   string
	AuthJWTAudience string
	LLMModel        string
	LLMTimeout      time.Duration
	SiteURL         string
	FetchTimeout    time.Duration
	FetchMaxBytes   int64
	SummarizeRPS    float64
	SummarizeBurst  int
	LogLevel        string
	LogFormat       string
}

// Load reads configuration from environment variables with sensible defaults.
// Provider credentials (GROQ_API_KEY, OPENROUTER_API_KEY, OPENAI_API_KEY) are
// read by llm.SelectProvider at bootstrap.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")

	if env == "production" && dbURL == "" {
		telemetry.Error("config.missing", map[string]any{"key": "DATABASE_URL"})
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000")),
		DatabaseURL:     dbURL,
		Env:             env,
		AuthJWTSecret:   getEnv("AUTH_JWT_SECRET", ""),
		AuthJWTAudience: getEnv("AUTH_JWT_AUDIENCE", ""),
		LLMModel:        getEnv("LLM_MODEL", ""),
		LLMTimeout:      time.Duration(getEnvInt("LLM_TIMEOUT_SECONDS", 0)) * time.Second,
		SiteURL:         getEnv("SITE_URL", "http://localhost:3000"),
		FetchTimeout:    getEnvDuration("FETCH_TIMEOUT", 0),
		FetchMaxBytes:   int64(getEnvInt("FETCH_MAX_BYTES", 5<<20)),
		SummarizeRPS:    getEnvFloat("RATE_LIMIT_SUMMARIZE_RPS", 0.2),
		SummarizeBurst:  getEnvInt("RATE_LIMIT_SUMMARIZE_BURST", 5),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "json"),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid_int", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid_float", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil {
		telemetry.Warn("config.invalid_duration", map[string]any{"key": key, "error": err})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}
