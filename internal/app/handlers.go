package app

import (
	"github.com/yungbote/ccis-backend/internal/http/handlers"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type Handlers struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Assessment  *handlers.AssessmentHandler
	Scaffolding *handlers.ScaffoldingHandler
	Gaming      *handlers.GamingHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:      handlers.NewHealthHandler(),
		Auth:        handlers.NewAuthHandler(services.Auth),
		Assessment:  handlers.NewAssessmentHandler(services.Assessment, services.History),
		Scaffolding: handlers.NewScaffoldingHandler(services.Scaffolding),
		Gaming:      handlers.NewGamingHandler(services.History, services.Scaffolding),
	}
}
