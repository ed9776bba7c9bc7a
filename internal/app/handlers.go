package app

import (
	httpH "github.com/yungbote/studyplan-backend/internal/http/handlers"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type Handlers struct {
	Schedule *httpH.ScheduleHandler
	Health   *httpH.HealthHandler
}

func wireHandlers(log *logger.Logger, clients Clients, services Services) Handlers {
	log.Info("Wiring handlers...")
	deps := map[string]httpH.Pinger{}
	if clients.Postgres != nil {
		deps["postgres"] = clients.Postgres
	}
	if clients.Mongo != nil {
		deps["mongo"] = clients.Mongo
	}
	if clients.Redis != nil {
		deps["redis"] = clients.Redis
	}
	return Handlers{
		Schedule: httpH.NewScheduleHandler(services.Schedule),
		Health:   httpH.NewHealthHandler(deps),
	}
}
