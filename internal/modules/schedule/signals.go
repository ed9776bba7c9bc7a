package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	wellbeingrepos "github.com/yungbote/studyplan-backend/internal/data/repos/wellbeing"
	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

// ErrSignalsUnavailable wraps any data-fetch failure during aggregation.
var ErrSignalsUnavailable = errors.New("signals unavailable")

type SignalSources struct {
	Moods       wellbeingrepos.MoodRatingRepo
	Journals    wellbeingrepos.JournalEntryRepo
	Scores      wellbeingrepos.SubjectScoreRepo
	Sessions    wellbeingrepos.StudySessionRepo
	Preferences PreferencesStore
}

type AggregatorConfig struct {
	MoodLookback time.Duration
	JournalLimit int
}

type Aggregator struct {
	src       SignalSources
	sentiment SentimentAnalyzer
	cfg       AggregatorConfig
	log       *logger.Logger
	now       func() time.Time
}

func NewAggregator(src SignalSources, sentiment SentimentAnalyzer, cfg AggregatorConfig, baseLog *logger.Logger, now func() time.Time) *Aggregator {
	if cfg.MoodLookback <= 0 {
		cfg.MoodLookback = 30 * 24 * time.Hour
	}
	if cfg.JournalLimit <= 0 {
		cfg.JournalLimit = 10
	}
	if now == nil {
		now = time.Now
	}
	return &Aggregator{
		src:       src,
		sentiment: sentiment,
		cfg:       cfg,
		log:       baseLog.With("service", "SignalAggregator"),
		now:       now,
	}
}

// Aggregate fetches every signal source concurrently. Sentiment analysis runs
// after the journal fetch and never fails the aggregation.
func (a *Aggregator) Aggregate(ctx context.Context, userID uuid.UUID) (*domain.UserSignals, error) {
	now := a.now().UTC()
	out := &domain.UserSignals{
		UserID:             userID,
		MoodTrend:          domain.TrendStable,
		SubjectPerformance: []domain.SubjectPerformance{},
		JournalSentiment:   domain.NeutralSentiment(),
	}

	g, gctx := errgroup.WithContext(ctx)
	dbc := dbctx.Context{Ctx: gctx}

	g.Go(func() error {
		rows, err := a.src.Moods.ListSince(dbc, userID, now.Add(-a.cfg.MoodLookback))
		if err != nil {
			return fmt.Errorf("mood ratings: %w", err)
		}
		ratings := make([]float64, 0, len(rows))
		for _, r := range rows {
			ratings = append(ratings, r.Rating)
		}
		out.AverageMood = AverageMood(ratings)
		out.MoodTrend = MoodTrendOf(ratings)
		return nil
	})

	g.Go(func() error {
		rows, err := a.src.Scores.LatestBySubject(dbc, userID)
		if err != nil {
			return fmt.Errorf("subject scores: %w", err)
		}
		perf := make([]domain.SubjectPerformance, 0, len(rows))
		for _, r := range rows {
			perf = append(perf, domain.SubjectPerformance{
				Subject:     r.Subject,
				Score:       r.Score,
				LastStudied: r.RecordedAt.UTC(),
			})
		}
		out.SubjectPerformance = perf
		return nil
	})

	g.Go(func() error {
		rows, err := a.src.Journals.ListRecent(dbc, userID, a.cfg.JournalLimit)
		if err != nil {
			return fmt.Errorf("journal entries: %w", err)
		}
		texts := make([]string, 0, len(rows))
		for _, r := range rows {
			texts = append(texts, r.Content)
		}
		out.JournalSentiment = a.sentiment.Analyze(gctx, userID, texts)
		return nil
	})

	g.Go(func() error {
		prefs, err := a.src.Preferences.Get(gctx, userID)
		if err != nil {
			return err
		}
		out.Preferences = prefs
		return nil
	})

	g.Go(func() error {
		last, err := a.src.Sessions.LastStartedAt(dbc, userID)
		if err != nil {
			return fmt.Errorf("study sessions: %w", err)
		}
		if last == nil {
			out.LastStudyDate = now.AddDate(0, 0, -1)
		} else {
			out.LastStudyDate = last.UTC()
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		a.log.Warn("signal aggregation failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("%w: %v", ErrSignalsUnavailable, err)
	}
	return out, nil
}
