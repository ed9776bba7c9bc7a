package schedule

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	"github.com/yungbote/studyplan-backend/internal/observability"
	"github.com/yungbote/studyplan-backend/internal/platform/apierr"
	"github.com/yungbote/studyplan-backend/internal/platform/ctxutil"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

const defaultGenerationTimeout = 45 * time.Second

type Service interface {
	WeeklySchedule(ctx context.Context, user *ctxutil.Principal) (*domain.WeeklySchedule, error)
	InvalidateScheduleCache(ctx context.Context, userID uuid.UUID) error
	Signals(ctx context.Context, user *ctxutil.Principal) (*domain.UserSignals, error)
	GetPreferences(ctx context.Context, user *ctxutil.Principal) (domain.Preferences, error)
	UpdatePreferences(ctx context.Context, user *ctxutil.Principal, p domain.Preferences) (domain.Preferences, error)
}

type ServiceConfig struct {
	CacheTTL          time.Duration
	GenerationTimeout time.Duration
}

type service struct {
	log         *logger.Logger
	cache       Cache
	aggregator  *Aggregator
	synthesizer *Synthesizer
	prefs       PreferencesStore
	cfg         ServiceConfig
	now         func() time.Time
	flight      singleflight.Group
}

func NewService(
	baseLog *logger.Logger,
	cache Cache,
	aggregator *Aggregator,
	synthesizer *Synthesizer,
	prefs PreferencesStore,
	cfg ServiceConfig,
	now func() time.Time,
) Service {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.GenerationTimeout <= 0 {
		cfg.GenerationTimeout = defaultGenerationTimeout
	}
	if now == nil {
		now = time.Now
	}
	return &service{
		log:         baseLog.With("service", "ScheduleService"),
		cache:       cache,
		aggregator:  aggregator,
		synthesizer: synthesizer,
		prefs:       prefs,
		cfg:         cfg,
		now:         now,
	}
}

func requireUser(user *ctxutil.Principal) error {
	if user == nil || user.ID == uuid.Nil {
		return apierr.Unauthorized("unauthorized")
	}
	return nil
}

// WeeklySchedule serves the cached plan or generates one. Concurrent misses for
// the same user share a single generation that outlives any one caller.
func (s *service) WeeklySchedule(ctx context.Context, user *ctxutil.Principal) (*domain.WeeklySchedule, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}

	metrics := observability.Current()
	cached, err := s.cache.Get(ctx, user.ID)
	switch {
	case err != nil:
		metrics.IncScheduleCache("error")
		s.log.Warn("schedule cache read failed; regenerating", "error", err, "user_id", user.ID)
	case cached != nil:
		metrics.IncScheduleCache("hit")
		s.log.Debug("schedule cache hit", "user_id", user.ID)
		return cached, nil
	default:
		metrics.IncScheduleCache("miss")
	}

	ch := s.flight.DoChan(user.ID.String(), func() (any, error) {
		genCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.GenerationTimeout)
		defer cancel()
		return s.generate(genCtx, user)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*domain.WeeklySchedule), nil
	}
}

func (s *service) generate(ctx context.Context, user *ctxutil.Principal) (*domain.WeeklySchedule, error) {
	epoch, epochErr := s.cache.Epoch(ctx, user.ID)
	if epochErr != nil {
		s.log.Warn("schedule cache epoch read failed; result will not be cached", "error", epochErr, "user_id", user.ID)
	}

	signals, err := s.aggregator.Aggregate(ctx, user.ID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "signals_unavailable", err)
	}

	source := "llm"
	out := s.synthesizer.Synthesize(ctx, signals, user)
	if out == nil {
		source = "fallback"
		out = GenerateFallback(signals, s.now())
	}
	observability.Current().IncScheduleGenerated(source)
	s.log.Info("schedule generated", "user_id", user.ID, "source", source, "days", len(out.Schedule))

	if epochErr != nil {
		return out, nil
	}
	stored, err := s.cache.SetIfEpoch(ctx, user.ID, out, s.cfg.CacheTTL, epoch)
	switch {
	case err != nil:
		s.log.Warn("schedule cache write failed", "error", err, "user_id", user.ID)
	case !stored:
		s.log.Info("schedule invalidated during generation; not cached", "user_id", user.ID)
	}
	return out, nil
}

// dropSchedule invalidates the cached entry and detaches any running
// generation so the next request starts a fresh one.
func (s *service) dropSchedule(ctx context.Context, userID uuid.UUID) error {
	err := s.cache.Invalidate(ctx, userID)
	s.flight.Forget(userID.String())
	return err
}

func (s *service) InvalidateScheduleCache(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return apierr.Unauthorized("unauthorized")
	}
	if err := s.dropSchedule(ctx, userID); err != nil {
		s.log.Error("schedule cache invalidate failed", "error", err, "user_id", userID)
		return apierr.New(http.StatusInternalServerError, "cache_unavailable", err)
	}
	return nil
}

func (s *service) Signals(ctx context.Context, user *ctxutil.Principal) (*domain.UserSignals, error) {
	if err := requireUser(user); err != nil {
		return nil, err
	}
	signals, err := s.aggregator.Aggregate(ctx, user.ID)
	if err != nil {
		return nil, apierr.New(http.StatusInternalServerError, "signals_unavailable", err)
	}
	return signals, nil
}

func (s *service) GetPreferences(ctx context.Context, user *ctxutil.Principal) (domain.Preferences, error) {
	if err := requireUser(user); err != nil {
		return domain.Preferences{}, err
	}
	p, err := s.prefs.Get(ctx, user.ID)
	if err != nil {
		return domain.Preferences{}, apierr.New(http.StatusInternalServerError, "preferences_unavailable", err)
	}
	return p, nil
}

// UpdatePreferences saves p and drops the cached schedule built from the old values.
func (s *service) UpdatePreferences(ctx context.Context, user *ctxutil.Principal, p domain.Preferences) (domain.Preferences, error) {
	if err := requireUser(user); err != nil {
		return domain.Preferences{}, err
	}
	saved, err := s.prefs.Save(ctx, user.ID, p)
	if err != nil {
		var ae *apierr.Error
		if errors.As(err, &ae) {
			return domain.Preferences{}, err
		}
		return domain.Preferences{}, apierr.New(http.StatusInternalServerError, "preferences_unavailable", err)
	}
	if err := s.dropSchedule(ctx, user.ID); err != nil {
		s.log.Warn("schedule cache invalidate after preference update failed", "error", err, "user_id", user.ID)
	}
	return saved, nil
}
