package app

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/yungbote/ccis-backend/internal/http/middleware"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

func wireRouter(log *logger.Logger, cfg Config, handlers Handlers, mw Middleware) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())
	router.Use(otelgin.Middleware("ccis-backend"))
	router.Use(middleware.AttachTraceContext())
	router.Use(middleware.RequestLogger(log))

	router.GET("/health", handlers.Health.HealthCheck)
	router.Static("/media/avatars", cfg.AvatarDir)

	v1 := router.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", handlers.Auth.Register)
		auth.POST("/login", handlers.Auth.Login)
	}

	authed := v1.Group("")
	authed.Use(mw.Auth.RequireAuth())
	{
		authed.POST("/auth/refresh", handlers.Auth.Refresh)
		authed.POST("/auth/logout", handlers.Auth.Logout)

		authed.POST("/assessments/sessions", handlers.Assessment.StartSession)
		authed.POST("/assessments", handlers.Assessment.Submit)
		authed.POST("/assessments/overall", handlers.Assessment.Overall)
		authed.GET("/assessments", handlers.Assessment.History)
		authed.GET("/assessments/latest", handlers.Assessment.Latest)
		authed.GET("/assessments/:id", handlers.Assessment.Get)
		authed.GET("/sessions", handlers.Assessment.Sessions)

		authed.GET("/scaffolding", handlers.Scaffolding.Current)
		authed.POST("/scaffolding/optimize", handlers.Scaffolding.Optimize)
		authed.POST("/scaffolding/advancement", handlers.Scaffolding.Advancement)
		authed.POST("/scaffolding/gaming-adjust", handlers.Gaming.AdjustScaffolding)

		authed.GET("/gaming/incidents", handlers.Gaming.Incidents)
		authed.POST("/gaming/incidents/:id/resolve", handlers.Gaming.ResolveIncident)
		authed.GET("/gaming/prevention", handlers.Gaming.Prevention)
		authed.GET("/events", handlers.Gaming.Events)
		authed.POST("/events", handlers.Assessment.RecordEvent)
	}

	return router
}
