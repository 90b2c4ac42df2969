package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	domainassessment "github.com/yungbote/ccis-backend/internal/domain/assessment"
	domainlearner "github.com/yungbote/ccis-backend/internal/domain/learner"
	"github.com/yungbote/ccis-backend/internal/platform/envutil"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresService opens the primary database. DB_DRIVER=sqlite switches to
// an embedded sqlite file, which is what local development and CI use.
func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
	serviceLog := log.With("service", "PostgresService")

	driver := envutil.Str("DB_DRIVER", "postgres")
	if driver == "sqlite" {
		path := envutil.Str("SQLITE_PATH", "data/ccis.db")
		serviceLog.Info("Connecting to sqlite...", "path", path)
		db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
		if err != nil {
			serviceLog.Error("Failed to open sqlite database", "error", err)
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return &PostgresService{db: db, log: serviceLog}, nil
	}

	postgresHost := envutil.Str("POSTGRES_HOST", "localhost")
	postgresPort := envutil.Str("POSTGRES_PORT", "5432")
	postgresUser := envutil.Str("POSTGRES_USER", "postgres")
	postgresPassword := envutil.Str("POSTGRES_PASSWORD", "")
	postgresName := envutil.Str("POSTGRES_NAME", "ccis")

	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

	serviceLog.Info("Connecting to Postgres...")
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		serviceLog.Error("Failed to connect to Postgres", "error", err)
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}

	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
		serviceLog.Error("Failed to enable uuid-ossp extension", "error", err)
		return nil, fmt.Errorf("enable uuid-ossp extension: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
	s.log.Info("Auto migrating tables...")
	err := s.db.AutoMigrate(
		&domainlearner.Learner{},
		&domainlearner.LearnerToken{},
		&domainlearner.LearnerEvent{},
		&domainassessment.Session{},
		&domainassessment.CompetencyAssessment{},
		&domainassessment.GamingIncident{},
		&domainassessment.ScaffoldingState{},
	)
	if err != nil {
		s.log.Error("Auto migration failed", "error", err)
		return err
	}
	return nil
}

func (s *PostgresService) DB() *gorm.DB {
	return s.db
}
