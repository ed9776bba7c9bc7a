package app

import (
	"fmt"

	"github.com/yungbote/studyplan-backend/internal/modules/schedule"
	"github.com/yungbote/studyplan-backend/internal/platform/authtoken"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
	"github.com/yungbote/studyplan-backend/internal/platform/ratelimit"
)

type Services struct {
	Schedule schedule.Service
	Cache    schedule.Cache
	Tokens   *authtoken.Codec
}

func wireServices(log *logger.Logger, cfg Config, clients Clients, repos Repos) (Services, error) {
	log.Info("Wiring services...")

	limiterCfg := ratelimit.Config{Limit: cfg.LLMRateLimit, Window: cfg.LLMRateWindow}
	var (
		limiter ratelimit.Limiter
		cache   schedule.Cache
	)
	if clients.Redis != nil {
		limiter = ratelimit.NewRedis(clients.Redis.Redis(), "ratelimit", limiterCfg)
		cache = schedule.NewRedisCache(clients.Redis.Redis())
	} else {
		limiter = ratelimit.NewMemory(limiterCfg)
		cache = schedule.NewMemoryCache()
	}

	var chat schedule.Chatter
	if clients.OpenAI != nil {
		chat = clients.OpenAI
	}
	gate := schedule.NewLimitedChatter(chat, limiter, cfg.OpenAI.Timeout, log)

	prefs := schedule.NewPreferencesStore(repos.StudyPreferences)
	aggregator := schedule.NewAggregator(schedule.SignalSources{
		Moods:       repos.MoodRating,
		Journals:    repos.JournalEntry,
		Scores:      repos.SubjectScore,
		Sessions:    repos.StudySession,
		Preferences: prefs,
	}, schedule.NewSentimentAnalyzer(gate, log), schedule.AggregatorConfig{
		MoodLookback: cfg.MoodLookback,
		JournalLimit: cfg.JournalLimit,
	}, log, nil)

	svc := schedule.NewService(log, cache, aggregator, schedule.NewSynthesizer(gate, log, nil), prefs,
		schedule.ServiceConfig{CacheTTL: cfg.ScheduleCacheTTL, GenerationTimeout: cfg.GenerationTimeout}, nil)

	var tokens *authtoken.Codec
	if cfg.JWTSecretKey != "" {
		c, err := authtoken.NewCodec(cfg.JWTSecretKey, cfg.AccessTokenTTL)
		if err != nil {
			return Services{}, fmt.Errorf("init token codec: %w", err)
		}
		tokens = c
	}

	return Services{Schedule: svc, Cache: cache, Tokens: tokens}, nil
}
