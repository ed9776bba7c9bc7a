package app

import (
	"context"
	"fmt"
	"time"

	server "github.com/yungbote/studyplan-backend/internal/http"
	"github.com/yungbote/studyplan-backend/internal/observability"
	"github.com/yungbote/studyplan-backend/internal/platform/envutil"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type App struct {
	Log      *logger.Logger
	Cfg      Config
	Clients  Clients
	Repos    Repos
	Services Services
	Server   *server.Server

	otelShutdown func(context.Context) error
}

// NewLogger builds the process logger from LOG_MODE.
func NewLogger() (*logger.Logger, error) {
	log, err := logger.New(envutil.String("LOG_MODE", "development"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return log, nil
}

func New(ctx context.Context, log *logger.Logger) (*App, error) {
	log.Info("Loading environment variables...")
	cfg := LoadConfig(log)

	observability.Init(cfg.MetricsEnabled)
	shutdown := observability.InitOTel(ctx, log, cfg.Otel)

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = shutdown(ctx)
		return nil, err
	}
	if clients.Postgres != nil && envutil.Bool("AUTO_MIGRATE", true) {
		if err := clients.Postgres.AutoMigrateAll(); err != nil {
			clients.Close(ctx)
			_ = shutdown(ctx)
			return nil, fmt.Errorf("postgres automigrate: %w", err)
		}
	}

	reposet, err := wireRepos(log, clients)
	if err != nil {
		clients.Close(ctx)
		_ = shutdown(ctx)
		return nil, err
	}
	serviceset, err := wireServices(log, cfg, clients, reposet)
	if err != nil {
		clients.Close(ctx)
		_ = shutdown(ctx)
		return nil, err
	}
	handlerset := wireHandlers(log, clients, serviceset)
	middleware := wireMiddleware(log, serviceset)

	return &App{
		Log:          log,
		Cfg:          cfg,
		Clients:      clients,
		Repos:        reposet,
		Services:     serviceset,
		Server:       wireServer(log, cfg, handlerset, middleware),
		otelShutdown: shutdown,
	}, nil
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	return a.Server.Run(ctx, ":"+a.Cfg.Port)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Clients.Close(ctx)
	if a.otelShutdown != nil {
		if err := a.otelShutdown(ctx); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
