package app

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yungbote/studyplan-backend/internal/clients/openai"
	"github.com/yungbote/studyplan-backend/internal/clients/redis"
	"github.com/yungbote/studyplan-backend/internal/data/db"
	"github.com/yungbote/studyplan-backend/internal/data/mongostore"
	"github.com/yungbote/studyplan-backend/internal/observability"
	"github.com/yungbote/studyplan-backend/internal/platform/envutil"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

const (
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
)

type Config struct {
	Port        string
	LogMode     string
	CORSOrigins []string

	JWTSecretKey   string
	AccessTokenTTL time.Duration

	DataBackend string
	Postgres    db.PostgresConfig
	Mongo       mongostore.Config
	Redis       redis.Config
	OpenAI      openai.Config

	ScheduleCacheTTL  time.Duration
	GenerationTimeout time.Duration
	LLMRateLimit      int
	LLMRateWindow     time.Duration
	MoodLookback      time.Duration
	JournalLimit      int

	MetricsEnabled bool
	Otel           observability.OtelConfig
}

// LoadEnvFile loads ENV_FILE (default .env) into the process environment when
// the file exists. Values already set in the environment win.
func LoadEnvFile() error {
	path := envutil.String("ENV_FILE", ".env")
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        envutil.String("PORT", "8080"),
		LogMode:     envutil.String("LOG_MODE", "development"),
		CORSOrigins: splitList(envutil.String("CORS_ORIGINS", "")),

		JWTSecretKey:   envutil.String("JWT_SECRET_KEY", ""),
		AccessTokenTTL: envutil.Duration("ACCESS_TOKEN_TTL", time.Hour),

		DataBackend: strings.ToLower(envutil.String("DATA_BACKEND", BackendPostgres)),
		Postgres: db.PostgresConfig{
			Host:     envutil.String("POSTGRES_HOST", "localhost"),
			Port:     envutil.String("POSTGRES_PORT", "5432"),
			User:     envutil.String("POSTGRES_USER", "postgres"),
			Password: envutil.String("POSTGRES_PASSWORD", ""),
			Name:     envutil.String("POSTGRES_NAME", "studyplan"),
			SSLMode:  envutil.String("POSTGRES_SSLMODE", "disable"),
		},
		Mongo: mongostore.Config{
			URI:      envutil.String("MONGO_URI", ""),
			Database: envutil.String("MONGO_DB", "studyplan"),
		},
		Redis: redis.Config{
			Addr:     envutil.String("REDIS_ADDR", ""),
			Password: envutil.String("REDIS_PASSWORD", ""),
			DB:       envutil.Int("REDIS_DB", 0),
		},
		OpenAI: openai.Config{
			APIKey:  envutil.String("OPENAI_API_KEY", ""),
			BaseURL: envutil.String("OPENAI_BASE_URL", ""),
			Model:   envutil.String("OPENAI_MODEL", ""),
			Timeout: time.Duration(envutil.Int("OPENAI_TIMEOUT_SECONDS", 20)) * time.Second,
		},

		ScheduleCacheTTL:  envutil.Duration("SCHEDULE_CACHE_TTL", 24*time.Hour),
		GenerationTimeout: envutil.Duration("SCHEDULE_GENERATION_TIMEOUT", 45*time.Second),
		LLMRateLimit:      envutil.Int("LLM_RATE_LIMIT", 20),
		LLMRateWindow:     envutil.Duration("LLM_RATE_WINDOW", time.Hour),
		MoodLookback:      time.Duration(envutil.Int("MOOD_LOOKBACK_DAYS", 30)) * 24 * time.Hour,
		JournalLimit:      envutil.Int("JOURNAL_LIMIT", 10),

		MetricsEnabled: envutil.Bool("METRICS_ENABLED", true),
		Otel: observability.OtelConfig{
			Enabled:     envutil.Bool("OTEL_ENABLED", false),
			ServiceName: envutil.String("OTEL_SERVICE_NAME", "studyplan-backend"),
			Environment: envutil.String("OTEL_ENVIRONMENT", envutil.String("LOG_MODE", "development")),
			Version:     envutil.String("OTEL_SERVICE_VERSION", ""),
			Endpoint:    envutil.String("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
			Headers:     envutil.String("OTEL_EXPORTER_OTLP_HEADERS", ""),
			Insecure:    envutil.Bool("OTEL_EXPORTER_OTLP_INSECURE", false),
			SampleRatio: envutil.Float("OTEL_SAMPLE_RATIO", 1),
		},
	}

	if log != nil {
		if cfg.JWTSecretKey == "" {
			log.Warn("JWT_SECRET_KEY not set; authenticated routes will reject every request")
		}
		if cfg.Redis.Addr == "" {
			log.Warn("REDIS_ADDR not set; using in-process schedule cache and rate limiter")
		}
		if cfg.OpenAI.APIKey == "" {
			log.Warn("OPENAI_API_KEY not set; schedules will use the rule-based fallback")
		}
	}
	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
