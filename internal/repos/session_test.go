package repos

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/yungbote/ccis-backend/internal/domain/assessment"
	"github.com/yungbote/ccis-backend/internal/domain/learner"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/repos/testutil"
)

func TestSessionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewSessionRepo(db, testutil.Logger(t))

	l := &learner.Learner{
		ID:        uuid.New(),
		Email:     "sessionrepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		t.Fatalf("seed learner: %v", err)
	}

	s := &assessment.Session{
		ID:             uuid.New(),
		LearnerID:      l.ID,
		CompetencyType: "technical_skills",
		Status:         assessment.SessionActive,
		StartedAt:      time.Now().UTC(),
	}
	if _, err := repo.Create(ctx, tx, []*assessment.Session{s}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByID(ctx, tx, s.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != assessment.SessionActive {
		t.Fatalf("status = %q, want active", got.Status)
	}

	if rows, err := repo.GetActiveByLearnerID(ctx, tx, l.ID); err != nil || len(rows) != 1 {
		t.Fatalf("GetActiveByLearnerID: err=%v len=%d", err, len(rows))
	}

	if err := repo.Complete(ctx, tx, s.ID, 12, 45.5); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	got, err = repo.GetByID(ctx, tx, s.ID)
	if err != nil {
		t.Fatalf("GetByID after complete: %v", err)
	}
	if got.Status != assessment.SessionCompleted || got.TaskCount != 12 || got.CompletedAt == nil {
		t.Fatalf("completion not persisted: %+v", got)
	}

	// Completing twice violates the active-only transition.
	if err := repo.Complete(ctx, tx, s.ID, 12, 45.5); !errors.Is(err, pkgerrors.ErrBusinessRule) {
		t.Fatalf("double complete: err=%v, want ErrBusinessRule", err)
	}

	if err := repo.Invalidate(ctx, tx, s.ID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if err := repo.Invalidate(ctx, tx, s.ID); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("double invalidate: err=%v, want ErrNotFound", err)
	}

	if _, err := repo.GetByID(ctx, tx, uuid.New()); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("missing session: err=%v, want ErrNotFound", err)
	}
}

func TestCompetencyAssessmentRepo_LatestPerCompetency(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewCompetencyAssessmentRepo(db, testutil.Logger(t))

	l := &learner.Learner{
		ID:        uuid.New(),
		Email:     "assessmentrepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		t.Fatalf("seed learner: %v", err)
	}
	s := &assessment.Session{
		ID:             uuid.New(),
		LearnerID:      l.ID,
		CompetencyType: "communication",
		Status:         assessment.SessionCompleted,
		StartedAt:      time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	base := time.Now().UTC().Add(-time.Hour)
	mk := func(compType string, level int, at time.Time) *assessment.CompetencyAssessment {
		return &assessment.CompetencyAssessment{
			ID:             uuid.New(),
			LearnerID:      l.ID,
			SessionID:      s.ID,
			CompetencyType: compType,
			Level:          level,
			RawScore:       0.5,
			Confidence:     70,
			Breakdown:      datatypes.JSON([]byte(`{}`)),
			CalculatedAt:   at,
		}
	}
	rows := []*assessment.CompetencyAssessment{
		mk("communication", 2, base),
		mk("communication", 3, base.Add(30*time.Minute)),
		mk("teamwork", 2, base.Add(10*time.Minute)),
	}
	if _, err := repo.Create(ctx, tx, rows); err != nil {
		t.Fatalf("Create: %v", err)
	}

	latest, err := repo.LatestPerCompetency(ctx, tx, l.ID)
	if err != nil {
		t.Fatalf("LatestPerCompetency: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("latest rows = %d, want 2", len(latest))
	}
	for _, row := range latest {
		if row.CompetencyType == "communication" && row.Level != 3 {
			t.Errorf("communication latest level = %d, want 3", row.Level)
		}
	}

	if rows, err := repo.ListByLearnerID(ctx, tx, l.ID, "communication", 0); err != nil || len(rows) != 2 {
		t.Fatalf("ListByLearnerID: err=%v len=%d", err, len(rows))
	}
}
