package mongostore

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

const (
	collMoodRatings  = "mood_ratings"
	collJournal      = "journal_entries"
	collScores       = "subject_scores"
	collSessions     = "study_sessions"
	collPreferences  = "study_preferences"
	defaultOpTimeout = 10 * time.Second
)

type Config struct {
	URI      string
	Database string
}

// Store owns one mongo client for the process lifetime.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    *logger.Logger
}

func Connect(ctx context.Context, log *logger.Logger, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		cfg.URI = "mongodb://localhost:27017"
	}
	if cfg.Database == "" {
		cfg.Database = "studyplan"
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	s := &Store{
		client: client,
		db:     client.Database(cfg.Database),
		log:    log.With("service", "MongoStore", "database", cfg.Database),
	}
	s.log.Info("Connected to MongoDB")
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.db.Collection(name)
}

func opContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, defaultOpTimeout)
}
