package app

import (
	server "github.com/yungbote/studyplan-backend/internal/http"
	"github.com/yungbote/studyplan-backend/internal/observability"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

func wireServer(log *logger.Logger, cfg Config, handlers Handlers, middleware Middleware) *server.Server {
	log.Info("Wiring router...")
	return server.NewServer(server.RouterConfig{
		Log:             log,
		ServiceName:     cfg.Otel.ServiceName,
		CORSOrigins:     cfg.CORSOrigins,
		Metrics:         observability.Current(),
		AuthMiddleware:  middleware.Auth,
		ScheduleHandler: handlers.Schedule,
		HealthHandler:   handlers.Health,
	})
}
