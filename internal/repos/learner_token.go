package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type LearnerTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, tokens []*learner.LearnerToken) ([]*learner.LearnerToken, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) ([]*learner.LearnerToken, error)
	GetByLearnerIDs(ctx context.Context, tx *gorm.DB, learnerIDs []uuid.UUID) ([]*learner.LearnerToken, error)
	GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*learner.LearnerToken, error)
	GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*learner.LearnerToken, error)
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error
	SoftDeleteByLearnerIDs(ctx context.Context, tx *gorm.DB, learnerIDs []uuid.UUID) error
}

type learnerTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearnerTokenRepo(db *gorm.DB, baseLog *logger.Logger) LearnerTokenRepo {
	repoLog := baseLog.With("repo", "LearnerTokenRepo")
	return &learnerTokenRepo{db: db, log: repoLog}
}

func (ltr *learnerTokenRepo) Create(ctx context.Context, tx *gorm.DB, tokens []*learner.LearnerToken) ([]*learner.LearnerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	if len(tokens) == 0 {
		return []*learner.LearnerToken{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&tokens).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return tokens, nil
}

func (ltr *learnerTokenRepo) GetByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) ([]*learner.LearnerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	var results []*learner.LearnerToken

	if len(tokenIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", tokenIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ltr *learnerTokenRepo) GetByLearnerIDs(ctx context.Context, tx *gorm.DB, learnerIDs []uuid.UUID) ([]*learner.LearnerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	var results []*learner.LearnerToken

	if len(learnerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("learner_id IN ?", learnerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ltr *learnerTokenRepo) GetByAccessTokens(ctx context.Context, tx *gorm.DB, accessTokens []string) ([]*learner.LearnerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	var results []*learner.LearnerToken

	if len(accessTokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("access_token IN ?", accessTokens).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ltr *learnerTokenRepo) GetByRefreshTokens(ctx context.Context, tx *gorm.DB, refreshTokens []string) ([]*learner.LearnerToken, error) {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	var results []*learner.LearnerToken

	if len(refreshTokens) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("refresh_token IN ?", refreshTokens).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (ltr *learnerTokenRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, tokenIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	if len(tokenIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("id IN ?", tokenIDs).
		Delete(&learner.LearnerToken{}).Error
}

func (ltr *learnerTokenRepo) SoftDeleteByLearnerIDs(ctx context.Context, tx *gorm.DB, learnerIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ltr.db
	}

	if len(learnerIDs) == 0 {
		return nil
	}

	return transaction.WithContext(ctx).
		Where("learner_id IN ?", learnerIDs).
		Delete(&learner.LearnerToken{}).Error
}
