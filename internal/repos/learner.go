package repos

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
)

type LearnerRepo interface {
	Create(ctx context.Context, tx *gorm.DB, learners []*learner.Learner) ([]*learner.Learner, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, learnerIDs []uuid.UUID) ([]*learner.Learner, error)
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*learner.Learner, error)
	EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error)
	UpdateAvatarPath(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, path string) error
	UpdateRegion(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, region, language string) error
}

type learnerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLearnerRepo(db *gorm.DB, baseLog *logger.Logger) LearnerRepo {
	repoLog := baseLog.With("repo", "LearnerRepo")
	return &learnerRepo{db: db, log: repoLog}
}

// mapWriteError converts driver-level failures into the package sentinels so
// services never inspect pg error codes themselves.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Errorf("%w: %s", pkgerrors.ErrConflict, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", pkgerrors.ErrInvalidArgument, pgErr.ConstraintName)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: duplicate key", pkgerrors.ErrConflict)
	}
	return err
}

func (lr *learnerRepo) Create(ctx context.Context, tx *gorm.DB, learners []*learner.Learner) ([]*learner.Learner, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	if len(learners) == 0 {
		return []*learner.Learner{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&learners).Error; err != nil {
		return nil, mapWriteError(err)
	}

	return learners, nil
}

func (lr *learnerRepo) GetByIDs(ctx context.Context, tx *gorm.DB, learnerIDs []uuid.UUID) ([]*learner.Learner, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var results []*learner.Learner

	if len(learnerIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", learnerIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (lr *learnerRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*learner.Learner, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var result learner.Learner
	if err := transaction.WithContext(ctx).
		Where("email = ?", email).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: learner by email", pkgerrors.ErrNotFound)
		}
		return nil, err
	}

	return &result, nil
}

func (lr *learnerRepo) EmailExists(ctx context.Context, tx *gorm.DB, email string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&learner.Learner{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}

func (lr *learnerRepo) UpdateAvatarPath(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, path string) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Model(&learner.Learner{}).
		Where("id = ?", learnerID).
		Update("avatar_path", path).Error
}

func (lr *learnerRepo) UpdateRegion(ctx context.Context, tx *gorm.DB, learnerID uuid.UUID, region, language string) error {
	transaction := tx
	if transaction == nil {
		transaction = lr.db
	}

	return transaction.WithContext(ctx).
		Model(&learner.Learner{}).
		Where("id = ?", learnerID).
		Updates(map[string]any{"region": region, "language": language}).Error
}
