package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	Port              string
	Env               string
	CORSAllowOrigin   []string
	MaxUploadBytes    int64
	AllowedExtensions []string
	MinWords          int

	KeywordSource string
	DatabaseURL   string

	AIProvider   string
	AIModel      string
	OpenAIAPIKey string
	GeminiAPIKey string
	AITimeout    time.Duration

	StemFactor       float64
	KeywordWeight    float64
	FormattingWeight float64

	RateLimitRPS   float64
	RateLimitBurst int
	// catalog reads (industries) share a looser bucket
	CatalogRateLimitRPS   float64
	CatalogRateLimitBurst int

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
}

const (
	DefaultMaxUploadBytes = 5 << 20
	DefaultMinWords       = 50
	DefaultAITimeout      = 15 * time.Second
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	source := normalizeKeywordSource(getEnv("KEYWORD_SOURCE", "embedded"))

	if source == "postgres" && dbURL == "" {
		log.Printf("KEYWORD_SOURCE=postgres requires DATABASE_URL; using embedded catalog")
		source = "embedded"
	}

	openAIKey := os.Getenv("OPENAI_API_KEY")
	geminiKey := os.Getenv("GEMINI_API_KEY")

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_BYTES", DefaultMaxUploadBytes)),
		AllowedExtensions: normalizeExtensions(splitAndTrim(getEnv("ALLOWED_EXTENSIONS", ".pdf,.doc,.docx,.txt"))),
		MinWords:          getEnvInt("MIN_WORDS", DefaultMinWords),

		KeywordSource: source,
		DatabaseURL:   dbURL,

		AIProvider:   normalizeProvider(getEnv("AI_PROVIDER", ""), openAIKey, geminiKey),
		AIModel:      getEnv("AI_MODEL", ""),
		OpenAIAPIKey: openAIKey,
		GeminiAPIKey: geminiKey,
		AITimeout:    getEnvDuration("AI_TIMEOUT", DefaultAITimeout),

		StemFactor:       getEnvFloat("MATCH_STEM_FACTOR", 0.6),
		KeywordWeight:    getEnvFloat("SCORE_KEYWORD_WEIGHT", 70),
		FormattingWeight: getEnvFloat("SCORE_FORMATTING_WEIGHT", 30),

		RateLimitRPS:          getEnvFloat("RATE_LIMIT_RPS", 1),
		RateLimitBurst:        getEnvInt("RATE_LIMIT_BURST", 10),
		CatalogRateLimitRPS:   getEnvFloat("RATE_LIMIT_CATALOG_RPS", 10),
		CatalogRateLimitBurst: getEnvInt("RATE_LIMIT_CATALOG_BURST", 40),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "none")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
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
	if err != nil || val <= 0 {
		log.Printf("config %s invalid int %q; using %d", key, raw, def)
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
	if err != nil || val < 0 {
		log.Printf("config %s invalid number %q; using %g", key, raw, def)
		return def
	}
	return val
}

// getEnvDuration accepts Go durations ("15s") or a bare number of seconds.
func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration %q; using %s", key, raw, def)
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
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3", "r2":
		return "s3"
	case "local":
		return "local"
	default:
		return "none"
	}
}

func normalizeKeywordSource(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "postgres", "pg", "db":
		return "postgres"
	default:
		return "embedded"
	}
}

// normalizeProvider picks the configured AI provider, inferring it from the
// available credentials when AI_PROVIDER is unset.
func normalizeProvider(raw, openAIKey, geminiKey string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "openai":
		return "openai"
	case "gemini", "google":
		return "gemini"
	case "none", "off", "disabled":
		return "none"
	}
	switch {
	case strings.TrimSpace(openAIKey) != "":
		return "openai"
	case strings.TrimSpace(geminiKey) != "":
		return "gemini"
	default:
		return "none"
	}
}

func normalizeExtensions(exts []string) []string {
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}
