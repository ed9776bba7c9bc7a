package schedule

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	wellbeingrepos "github.com/yungbote/studyplan-backend/internal/data/repos/wellbeing"
	domain "github.com/yungbote/studyplan-backend/internal/domain/schedule"
	types "github.com/yungbote/studyplan-backend/internal/domain/wellbeing"
	"github.com/yungbote/studyplan-backend/internal/platform/dbctx"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
	"github.com/yungbote/studyplan-backend/internal/platform/ratelimit"
)

var errUnreachable = errors.New("dial tcp: connection refused")

// fakeChatter answers synthesis and sentiment prompts separately and can block until released.
type fakeChatter struct {
	mu        sync.Mutex
	schedule  string
	sentiment string
	err       error
	calls     int
	prompts   []string
	release   chan struct{}
}

func (f *fakeChatter) ChatJSON(ctx context.Context, system string, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.prompts = append(f.prompts, user)
	release := f.release
	f.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if f.err != nil {
		return "", f.err
	}
	if strings.Contains(strings.ToLower(system), "journal entries") {
		return f.sentiment, nil
	}
	return f.schedule, nil
}

func (f *fakeChatter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newGate(chat Chatter, limiter ratelimit.Limiter) *LimitedChatter {
	return NewLimitedChatter(chat, limiter, time.Second, logger.Nop())
}

type fakeMoods struct {
	wellbeingrepos.MoodRatingRepo
	ratings []float64
	err     error
}

func (f *fakeMoods) ListSince(dbctx.Context, uuid.UUID, time.Time) ([]*types.MoodRating, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.MoodRating, 0, len(f.ratings))
	for i, r := range f.ratings {
		out = append(out, &types.MoodRating{Rating: r, RecordedAt: fixedNow.Add(time.Duration(i-len(f.ratings)) * time.Hour)})
	}
	return out, nil
}

type fakeJournals struct {
	wellbeingrepos.JournalEntryRepo
	entries []string
	limit   int
}

func (f *fakeJournals) ListRecent(_ dbctx.Context, _ uuid.UUID, limit int) ([]*types.JournalEntry, error) {
	f.limit = limit
	out := make([]*types.JournalEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, &types.JournalEntry{Content: e})
	}
	return out, nil
}

type fakeScores struct {
	wellbeingrepos.SubjectScoreRepo
	mu     sync.Mutex
	scores []domain.SubjectPerformance
	err    error
	calls  int
}

func (f *fakeScores) LatestBySubject(dbctx.Context, uuid.UUID) ([]*types.SubjectScore, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*types.SubjectScore, 0, len(f.scores))
	for _, s := range f.scores {
		out = append(out, &types.SubjectScore{Subject: s.Subject, Score: s.Score, RecordedAt: fixedNow.Add(-48 * time.Hour)})
	}
	return out, nil
}

func (f *fakeScores) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeSessions struct {
	wellbeingrepos.StudySessionRepo
	last *time.Time
}

func (f *fakeSessions) LastStartedAt(dbctx.Context, uuid.UUID) (*time.Time, error) {
	return f.last, nil
}

type fakePrefs struct {
	mu    sync.Mutex
	saved map[uuid.UUID]domain.Preferences
	err   error
}

func (f *fakePrefs) Get(_ context.Context, userID uuid.UUID) (domain.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return domain.Preferences{}, f.err
	}
	if p, ok := f.saved[userID]; ok {
		return p, nil
	}
	return domain.DefaultPreferences(), nil
}

func (f *fakePrefs) Save(_ context.Context, userID uuid.UUID, p domain.Preferences) (domain.Preferences, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saved == nil {
		f.saved = map[uuid.UUID]domain.Preferences{}
	}
	f.saved[userID] = p
	return p, nil
}

type fakeSources struct {
	moods    *fakeMoods
	journals *fakeJournals
	scores   *fakeScores
	sessions *fakeSessions
	prefs    *fakePrefs
}

func newFakeSources(subjects ...domain.SubjectPerformance) *fakeSources {
	return &fakeSources{
		moods:    &fakeMoods{},
		journals: &fakeJournals{},
		scores:   &fakeScores{scores: subjects},
		sessions: &fakeSessions{},
		prefs:    &fakePrefs{},
	}
}

func (f *fakeSources) sources() SignalSources {
	return SignalSources{
		Moods:       f.moods,
		Journals:    f.journals,
		Scores:      f.scores,
		Sessions:    f.sessions,
		Preferences: f.prefs,
	}
}

// flakyCache fails every operation with err.
type flakyCache struct {
	Cache
	getErr   error
	setErr   error
	delErr   error
	epochErr error
}

func (c *flakyCache) Get(ctx context.Context, userID uuid.UUID) (*domain.WeeklySchedule, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.Cache.Get(ctx, userID)
}

func (c *flakyCache) Set(ctx context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration) error {
	if c.setErr != nil {
		return c.setErr
	}
	return c.Cache.Set(ctx, userID, s, ttl)
}

func (c *flakyCache) SetIfEpoch(ctx context.Context, userID uuid.UUID, s *domain.WeeklySchedule, ttl time.Duration, epoch int64) (bool, error) {
	if c.setErr != nil {
		return false, c.setErr
	}
	return c.Cache.SetIfEpoch(ctx, userID, s, ttl, epoch)
}

func (c *flakyCache) Epoch(ctx context.Context, userID uuid.UUID) (int64, error) {
	if c.epochErr != nil {
		return 0, c.epochErr
	}
	return c.Cache.Epoch(ctx, userID)
}

func (c *flakyCache) Invalidate(ctx context.Context, userID uuid.UUID) error {
	if c.delErr != nil {
		return c.delErr
	}
	return c.Cache.Invalidate(ctx, userID)
}

// countingCache reports how many reads have happened.
type countingCache struct {
	Cache
	gets chan struct{}
}

func (c *countingCache) Get(ctx context.Context, userID uuid.UUID) (*domain.WeeklySchedule, error) {
	s, err := c.Cache.Get(ctx, userID)
	c.gets <- struct{}{}
	return s, err
}
