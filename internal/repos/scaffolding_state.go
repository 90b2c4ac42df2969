package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yungbote/ccis-backend/internal/domain/assessment"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type ScaffoldingStateRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, state *assessment.ScaffoldingState) (*assessment.ScaffoldingState, error)
	GetByLearnerAndCompetency(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, competencyType string) (*assessment.ScaffoldingState, error)
	ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*assessment.ScaffoldingState, error)
}

type scaffoldingStateRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewScaffoldingStateRepo(db *gorm.DB, baseLog *logger.Logger) ScaffoldingStateRepo {
	repoLog := baseLog.With("repo", "ScaffoldingStateRepo")
	return &scaffoldingStateRepo{db: db, log: repoLog}
}

// Upsert keeps at most one current configuration per learner and competency,
// replacing the row in place on conflict.
func (ssr *scaffoldingStateRepo) Upsert(ctx context.Context, tx *gorm.DB, state *assessment.ScaffoldingState) (*assessment.ScaffoldingState, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "learner_id"}, {Name: "competency_type"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"level", "config", "source", "applied_at", "updated_at",
			}),
		}).
		Create(state).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return state, nil
}

func (ssr *scaffoldingStateRepo) GetByLearnerAndCompetency(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, competencyType string) (*assessment.ScaffoldingState, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	var result assessment.ScaffoldingState
	if err := transaction.WithContext(ctx).
		Where("learner_id = ? AND competency_type = ?", learnerID, competencyType).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: scaffolding state for %s", pkgerrors.ErrNotFound, competencyType)
		}
		return nil, err
	}

	return &result, nil
}

func (ssr *scaffoldingStateRepo) ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*assessment.ScaffoldingState, error) {
	transaction := tx
	if transaction == nil {
		transaction = ssr.db
	}

	var results []*assessment.ScaffoldingState
	if err := transaction.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("competency_type ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
