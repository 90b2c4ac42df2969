package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/repos/testutil"
)

func TestLearnerRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewLearnerRepo(db, testutil.Logger(t))

	l := &learner.Learner{
		ID:        uuid.New(),
		Email:     "learnerrepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
		Region:    "INDIA",
		Language:  "en",
	}
	if _, err := repo.Create(ctx, tx, []*learner.Learner{l}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByIDs(ctx, tx, []uuid.UUID{l.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByIDs: err=%v len=%d", err, len(rows))
	}

	got, err := repo.GetByEmail(ctx, tx, l.Email)
	if err != nil {
		t.Fatalf("GetByEmail: %v", err)
	}
	if got.ID != l.ID || got.Region != "INDIA" {
		t.Fatalf("GetByEmail returned %+v", got)
	}

	if _, err := repo.GetByEmail(ctx, tx, "nobody@example.com"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("GetByEmail missing: err=%v, want ErrNotFound", err)
	}

	if exists, err := repo.EmailExists(ctx, tx, l.Email); err != nil || !exists {
		t.Fatalf("EmailExists: err=%v exists=%v", err, exists)
	}

	dup := &learner.Learner{
		ID:        uuid.New(),
		Email:     l.Email,
		Password:  "pw2",
		FirstName: "C",
		LastName:  "D",
	}
	if _, err := repo.Create(ctx, tx, []*learner.Learner{dup}); !errors.Is(err, pkgerrors.ErrConflict) {
		t.Fatalf("duplicate email: err=%v, want ErrConflict", err)
	}

	if err := repo.UpdateAvatarPath(ctx, tx, l.ID, "avatars/a.png"); err != nil {
		t.Fatalf("UpdateAvatarPath: %v", err)
	}
	if err := repo.UpdateRegion(ctx, tx, l.ID, "UAE", "ar"); err != nil {
		t.Fatalf("UpdateRegion: %v", err)
	}
	got, err = repo.GetByEmail(ctx, tx, l.Email)
	if err != nil {
		t.Fatalf("GetByEmail after update: %v", err)
	}
	if got.AvatarPath != "avatars/a.png" || got.Region != "UAE" || got.Language != "ar" {
		t.Fatalf("updates not applied: %+v", got)
	}
}

func TestLearnerTokenRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewLearnerTokenRepo(db, testutil.Logger(t))

	l := &learner.Learner{
		ID:        uuid.New(),
		Email:     "learnertokenrepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		t.Fatalf("seed learner: %v", err)
	}

	tok := &learner.LearnerToken{
		ID:           uuid.New(),
		LearnerID:    l.ID,
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if _, err := repo.Create(ctx, tx, []*learner.LearnerToken{tok}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.GetByLearnerIDs(ctx, tx, []uuid.UUID{l.ID}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByLearnerIDs: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByAccessTokens(ctx, tx, []string{"access-1"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByAccessTokens: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.GetByRefreshTokens(ctx, tx, []string{"refresh-1"}); err != nil || len(rows) != 1 {
		t.Fatalf("GetByRefreshTokens: err=%v len=%d", err, len(rows))
	}

	if err := repo.SoftDeleteByLearnerIDs(ctx, tx, []uuid.UUID{l.ID}); err != nil {
		t.Fatalf("SoftDeleteByLearnerIDs: %v", err)
	}
	if rows, err := repo.GetByLearnerIDs(ctx, tx, []uuid.UUID{l.ID}); err != nil || len(rows) != 0 {
		t.Fatalf("tokens visible after soft delete: err=%v len=%d", err, len(rows))
	}
}
