package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type LearnerEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, events []*learner.LearnerEvent) ([]*learner.LearnerEvent, error)
	GetByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time, limit int) ([]*learner.LearnerEvent, error)
	GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*learner.LearnerEvent, error)
}

type learnerEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearnerEventRepo(db *gorm.DB, baseLog *logger.Logger) LearnerEventRepo {
	repoLog := baseLog.With("repo", "LearnerEventRepo")
	return &learnerEventRepo{db: db, log: repoLog}
}

func (ler *learnerEventRepo) Append(ctx context.Context, tx *gorm.DB, events []*learner.LearnerEvent) ([]*learner.LearnerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ler.db
	}

	if len(events) == 0 {
		return []*learner.LearnerEvent{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&events).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return events, nil
}

func (ler *learnerEventRepo) GetByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, since time.Time, limit int) ([]*learner.LearnerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ler.db
	}

	q := transaction.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("created_at DESC")
	if !since.IsZero() {
		q = q.Where("created_at >= ?", since)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*learner.LearnerEvent
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ler *learnerEventRepo) GetBySessionID(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*learner.LearnerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = ler.db
	}

	var results []*learner.LearnerEvent
	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
