package repos

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/assessment"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, sessions []*assessment.Session) ([]*assessment.Session, error)
	GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*assessment.Session, error)
	GetActiveByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*assessment.Session, error)
	ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*assessment.Session, error)
	Complete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, taskCount int, durationMinutes float64) error
	Invalidate(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (sr *sessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*assessment.Session) ([]*assessment.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	if len(sessions) == 0 {
		return []*assessment.Session{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return sessions, nil
}

func (sr *sessionRepo) GetByID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*assessment.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var result assessment.Session
	if err := transaction.WithContext(ctx).
		Where("id = ?", sessionID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %s", pkgerrors.ErrNotFound, sessionID)
		}
		return nil, err
	}

	return &result, nil
}

func (sr *sessionRepo) GetActiveByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*assessment.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	var results []*assessment.Session
	if err := transaction.WithContext(ctx).
		Where("learner_id = ? AND status = ?", learnerID, assessment.SessionActive).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (sr *sessionRepo) ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, limit int) ([]*assessment.Session, error) {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	q := transaction.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("started_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*assessment.Session
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (sr *sessionRepo) Complete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID, taskCount int, durationMinutes float64) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	now := time.Now().UTC()
	res := transaction.WithContext(ctx).
		Model(&assessment.Session{}).
		Where("id = ? AND status = ?", sessionID, assessment.SessionActive).
		Updates(map[string]any{
			"status":           assessment.SessionCompleted,
			"task_count":       taskCount,
			"duration_minutes": durationMinutes,
			"completed_at":     now,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: session %s is not active", pkgerrors.ErrBusinessRule, sessionID)
	}
	return nil
}

func (sr *sessionRepo) Invalidate(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = sr.db
	}

	res := transaction.WithContext(ctx).
		Model(&assessment.Session{}).
		Where("id = ? AND status <> ?", sessionID, assessment.SessionInvalidated).
		Update("status", assessment.SessionInvalidated)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: session %s", pkgerrors.ErrNotFound, sessionID)
	}
	return nil
}
