package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/assessment"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type CompetencyAssessmentRepo interface {
	Create(ctx context.Context, tx *gorm.DB, assessments []*assessment.CompetencyAssessment) ([]*assessment.CompetencyAssessment, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*assessment.CompetencyAssessment, error)
	ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, competencyType string, limit int) ([]*assessment.CompetencyAssessment, error)
	LatestPerCompetency(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*assessment.CompetencyAssessment, error)
}

type competencyAssessmentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCompetencyAssessmentRepo(db *gorm.DB, baseLog *logger.Logger) CompetencyAssessmentRepo {
	repoLog := baseLog.With("repo", "CompetencyAssessmentRepo")
	return &competencyAssessmentRepo{db: db, log: repoLog}
}

func (car *competencyAssessmentRepo) Create(ctx context.Context, tx *gorm.DB, assessments []*assessment.CompetencyAssessment) ([]*assessment.CompetencyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = car.db
	}

	if len(assessments) == 0 {
		return []*assessment.CompetencyAssessment{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&assessments).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return assessments, nil
}

func (car *competencyAssessmentRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*assessment.CompetencyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = car.db
	}

	var results []*assessment.CompetencyAssessment

	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (car *competencyAssessmentRepo) ListByLearnerID(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, competencyType string, limit int) ([]*assessment.CompetencyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = car.db
	}

	q := transaction.WithContext(ctx).
		Where("learner_id = ?", learnerID).
		Order("calculated_at DESC")
	if competencyType != "" {
		q = q.Where("competency_type = ?", competencyType)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var results []*assessment.CompetencyAssessment
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// LatestPerCompetency returns the newest assessment row per competency type,
// the input to multi-competency aggregation.
func (car *competencyAssessmentRepo) LatestPerCompetency(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID) ([]*assessment.CompetencyAssessment, error) {
	transaction := tx
	if transaction == nil {
		transaction = car.db
	}

	sub := transaction.WithContext(ctx).
		Model(&assessment.CompetencyAssessment{}).
		Select("competency_type, MAX(calculated_at) AS max_calculated_at").
		Where("learner_id = ?", learnerID).
		Group("competency_type")

	var results []*assessment.CompetencyAssessment
	if err := transaction.WithContext(ctx).
		Joins("JOIN (?) latest ON competency_assessment.competency_type = latest.competency_type AND competency_assessment.calculated_at = latest.max_calculated_at", sub).
		Where("competency_assessment.learner_id = ?", learnerID).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}
