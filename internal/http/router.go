package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/studyplan-backend/internal/http/handlers"
	httpMW "github.com/yungbote/studyplan-backend/internal/http/middleware"
	"github.com/yungbote/studyplan-backend/internal/observability"
	"github.com/yungbote/studyplan-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	ServiceName string
	CORSOrigins []string
	Metrics     *observability.Metrics

	AuthMiddleware  *httpMW.AuthMiddleware
	ScheduleHandler *httpH.ScheduleHandler
	HealthHandler   *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "studyplan"
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
		r.GET("/readyz", cfg.HealthHandler.Ready)
	}
	if cfg.Metrics != nil {
		r.GET("/metrics", gin.WrapF(cfg.Metrics.WriteHTTP))
	}

	protected := r.Group("/schedule")
	{
		if cfg.AuthMiddleware != nil {
			protected.Use(cfg.AuthMiddleware.RequireAuth())
		}

		if cfg.ScheduleHandler != nil {
			protected.GET("/weekly", cfg.ScheduleHandler.GetWeekly)
			protected.POST("/invalidate", cfg.ScheduleHandler.Invalidate)
			protected.GET("/signals", cfg.ScheduleHandler.GetSignals)
			protected.GET("/preferences", cfg.ScheduleHandler.GetPreferences)
			protected.PUT("/preferences", cfg.ScheduleHandler.PutPreferences)
		}
	}

	return r
}
