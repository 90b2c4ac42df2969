package app

import (
	"fmt"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/incidents"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/services"
)

type Services struct {
	Avatar      services.AvatarService
	Auth        services.AuthService
	Scaffolding services.ScaffoldingService
	Assessment  services.AssessmentService
	History     services.HistoryService

	Redis       *goredis.Client
	IncidentBus incidents.Bus
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) (Services, error) {
	log.Info("Wiring services...")

	var rdb *goredis.Client
	if cfg.RedisAddr != "" {
		rdb = goredis.NewClient(&goredis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	incidentBus := incidents.NewNoopBus()
	if rdb != nil {
		bus, err := incidents.NewRedisBus(log, rdb)
		if err != nil {
			log.Warn("Could not init redis incident bus, falling back to noop", "error", err)
		} else {
			incidentBus = bus
		}
	}

	avatarService, err := services.NewAvatarService(db, log, reposet.Learner, cfg.AvatarDir)
	if err != nil {
		return Services{}, fmt.Errorf("init avatar service: %w", err)
	}
	authService := services.NewAuthService(db, log, reposet.Learner, reposet.LearnerToken, avatarService, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	scaffoldingService := services.NewScaffoldingService(db, log, reposet.Learner, reposet.ScaffoldingState, rdb)
	assessmentService := services.NewAssessmentService(db, log, reposet.Session, reposet.CompetencyAssessment, reposet.GamingIncident, reposet.LearnerEvent, scaffoldingService, incidentBus)
	historyService := services.NewHistoryService(db, log, reposet.Learner, reposet.Session, reposet.CompetencyAssessment, reposet.GamingIncident, reposet.LearnerEvent)

	return Services{
		Avatar:      avatarService,
		Auth:        authService,
		Scaffolding: scaffoldingService,
		Assessment:  assessmentService,
		History:     historyService,
		Redis:       rdb,
		IncidentBus: incidentBus,
	}, nil
}
