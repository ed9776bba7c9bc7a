package app

import (
	"context"
	"fmt"

	"github.com/yungbote/studyplan-backend/internal/clients/openai"
	"github.com/yungbote/studyplan-backend/internal/clients/redis"
	"github.com/yungbote/studyplan-backend/internal/data/db"
	"github.com/yungbote/studyplan-backend/internal/data/mongostore"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

// Clients holds every external connection. Optional ones stay nil.
type Clients struct {
	Postgres *db.PostgresService
	Mongo    *mongostore.Store
	Redis    *redis.Client
	OpenAI   openai.Client
}

func wireClients(ctx context.Context, log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")
	var out Clients

	switch cfg.DataBackend {
	case BackendMongo:
		store, err := mongostore.Connect(ctx, log, cfg.Mongo)
		if err != nil {
			return Clients{}, fmt.Errorf("init mongo: %w", err)
		}
		out.Mongo = store
	case BackendPostgres, "":
		pg, err := db.NewPostgresService(log, cfg.Postgres)
		if err != nil {
			return Clients{}, fmt.Errorf("init postgres: %w", err)
		}
		out.Postgres = pg
	default:
		return Clients{}, fmt.Errorf("unknown DATA_BACKEND %q", cfg.DataBackend)
	}

	if cfg.Redis.Addr != "" {
		rc, err := redis.NewClient(ctx, log, cfg.Redis)
		if err != nil {
			out.Close(ctx)
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		out.Redis = rc
	}

	if cfg.OpenAI.APIKey != "" {
		oc, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			out.Close(ctx)
			return Clients{}, fmt.Errorf("init openai: %w", err)
		}
		out.OpenAI = oc
	}

	return out, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Mongo != nil {
		_ = c.Mongo.Close(ctx)
	}
	if c.Postgres != nil {
		_ = c.Postgres.Close()
	}
}
