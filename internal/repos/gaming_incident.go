package repos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/assessment"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type GamingIncidentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, incidents []*assessment.GamingIncident) ([]*assessment.GamingIncident, error)
	ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*assessment.GamingIncident, error)
	ListUnresolved(ctx context.Context, tx *gorm.DB, riskLevel string, limit int) ([]*assessment.GamingIncident, error)
	Resolve(ctx context.Context, tx *gorm.DB, learnerID, incidentID uuid.UUID, resolution string) error
}

type gamingIncidentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGamingIncidentRepo(db *gorm.DB, baseLog *logger.Logger) GamingIncidentRepo {
	repoLog := baseLog.With("repo", "GamingIncidentRepo")
	return &gamingIncidentRepo{db: db, log: repoLog}
}

func (gir *gamingIncidentRepo) Create(ctx context.Context, tx *gorm.DB, incidents []*assessment.GamingIncident) ([]*assessment.GamingIncident, error) {
	transaction := tx
	if transaction == nil {
		transaction = gir.db
	}

	if len(incidents) == 0 {
		return []*assessment.GamingIncident{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&incidents).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return incidents, nil
}

func (gir *gamingIncidentRepo) ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*assessment.GamingIncident, error) {
	transaction := tx
	if transaction == nil {
		transaction = gir.db
	}

	q := transaction.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("analyzed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*assessment.GamingIncident
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (gir *gamingIncidentRepo) ListUnresolved(ctx context.Context, tx *gorm.DB, riskLevel string, limit int) ([]*assessment.GamingIncident, error) {
	transaction := tx
	if transaction == nil {
		transaction = gir.db
	}

	q := transaction.WithContext(ctx).
		Where("resolved_at IS NULL").
		Order("analyzed_at ASC")
	if riskLevel != "" {
		q = q.Where("risk_level = ?", riskLevel)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*assessment.GamingIncident
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (gir *gamingIncidentRepo) Resolve(ctx context.Context, tx *gorm.DB, learnerID, incidentID uuid.UUID, resolution string) error {
	transaction := tx
	if transaction == nil {
		transaction = gir.db
	}

	now := time.Now().UTC()
	res := transaction.WithContext(ctx).
		Model(&assessment.GamingIncident{}).
		Where("id = ? AND learner_id = ? AND resolved_at IS NULL", incidentID, learnerID).
		Updates(map[string]any{"resolved_at": now, "resolution": resolution})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: open incident %s", pkgerrors.ErrNotFound, incidentID)
	}
	return nil
}
