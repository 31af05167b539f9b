package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"outreach-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port               string
	CORSAllowOrigin    []string
	Env                string
	DatabaseURL        string
	RedisURL           string
	PageCacheTTL       time.Duration
	LLMProvider        string
	LLMModel           string
	LLMTimeout         time.Duration
	EmbeddingProvider  string
	EmbeddingModel     string
	FetchTimeout       time.Duration
	FetchMaxChars      int
	SearchTimeout      time.Duration
	JWTSecret          string
	JWTTTL             time.Duration
	ObjectStoreType    string
	LocalStoreDir      string
	AWSRegion          string
	S3Bucket           string
	S3Prefix           string
	SSEKMSKeyID        string
	OpenAIAPIKey       string
	GeminiAPIKey       string
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
	RateLimitRPS       float64
	RateLimitBurst     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	env := normalizeEnv(v.GetString("ENV"))
	dbURL := strings.TrimSpace(v.GetString("DATABASE_URL"))
	if env == "production" && dbURL == "" {
		telemetry.Error("config.invalid", map[string]any{"reason": "DATABASE_URL is required in production"})
	}

	return Config{
		Port:               v.GetString("PORT"),
		CORSAllowOrigin:    splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		Env:                env,
		DatabaseURL:        dbURL,
		RedisURL:           strings.TrimSpace(v.GetString("REDIS_URL")),
		PageCacheTTL:       v.GetDuration("PAGE_CACHE_TTL"),
		LLMProvider:        normalizeProvider(v.GetString("LLM_PROVIDER")),
		LLMModel:           v.GetString("LLM_MODEL"),
		LLMTimeout:         v.GetDuration("LLM_TIMEOUT"),
		EmbeddingProvider:  normalizeEmbedding(v.GetString("EMBEDDING_PROVIDER")),
		EmbeddingModel:     v.GetString("EMBEDDING_MODEL"),
		FetchTimeout:       v.GetDuration("FETCH_TIMEOUT"),
		FetchMaxChars:      v.GetInt("FETCH_MAX_CHARS"),
		SearchTimeout:      v.GetDuration("SEARCH_TIMEOUT"),
		JWTSecret:          v.GetString("JWT_SECRET"),
		JWTTTL:             v.GetDuration("JWT_TTL"),
		ObjectStoreType:    normalizeStoreType(v.GetString("OBJECT_STORE")),
		LocalStoreDir:      v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:          v.GetString("AWS_REGION"),
		S3Bucket:           v.GetString("S3_BUCKET"),
		S3Prefix:           v.GetString("S3_PREFIX"),
		SSEKMSKeyID:        v.GetString("SSE_KMS_KEY_ID"),
		OpenAIAPIKey:       v.GetString("OPENAI_API_KEY"),
		GeminiAPIKey:       v.GetString("GEMINI_API_KEY"),
		GoogleClientID:     v.GetString("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: v.GetString("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  v.GetString("GOOGLE_REDIRECT_URL"),
		UIRedirectURL:      v.GetString("UI_REDIRECT_URL"),
		RateLimitRPS:       v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:     v.GetInt("RATE_LIMIT_BURST"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "dev")
	v.SetDefault("CORS_ALLOW_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("PAGE_CACHE_TTL", "15m")
	v.SetDefault("LLM_PROVIDER", "none")
	v.SetDefault("LLM_TIMEOUT", "30s")
	v.SetDefault("EMBEDDING_PROVIDER", "hash")
	v.SetDefault("FETCH_TIMEOUT", "10s")
	v.SetDefault("FETCH_MAX_CHARS", 8000)
	v.SetDefault("SEARCH_TIMEOUT", "5s")
	v.SetDefault("JWT_TTL", "168h")
	v.SetDefault("OBJECT_STORE", "local")
	v.SetDefault("LOCAL_STORE_DIR", "./data")
	v.SetDefault("RATE_LIMIT_RPS", 1.0)
	v.SetDefault("RATE_LIMIT_BURST", 10)
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

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}

func normalizeProvider(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	default:
		return "none"
	}
}

func normalizeEmbedding(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	default:
		return "hash"
	}
}

// IsDevLike reports whether env allows in-memory fallbacks for missing infrastructure.
func IsDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
