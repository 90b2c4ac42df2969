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

func TestScaffoldingStateRepo_UpsertReplacesCurrentRow(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewScaffoldingStateRepo(db, testutil.Logger(t))

	l := &learner.Learner{
		ID:        uuid.New(),
		Email:     "scaffoldingrepo@example.com",
		Password:  "pw",
		FirstName: "A",
		LastName:  "B",
	}
	if err := tx.WithContext(ctx).Create(l).Error; err != nil {
		t.Fatalf("seed learner: %v", err)
	}

	st := &assessment.ScaffoldingState{
		ID:             uuid.New(),
		LearnerID:      l.ID,
		CompetencyType: "communication",
		Level:          1,
		Config:         datatypes.JSON([]byte(`{"hints":{"enabled":true}}`)),
		Source:         assessment.ScaffoldingSourceBaseline,
		AppliedAt:      time.Now().UTC(),
	}
	if _, err := repo.Upsert(ctx, tx, st); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	st2 := &assessment.ScaffoldingState{
		ID:             uuid.New(),
		LearnerID:      l.ID,
		CompetencyType: "communication",
		Level:          2,
		Config:         datatypes.JSON([]byte(`{"hints":{"enabled":false}}`)),
		Source:         assessment.ScaffoldingSourceGaming,
		AppliedAt:      time.Now().UTC(),
	}
	if _, err := repo.Upsert(ctx, tx, st2); err != nil {
		t.Fatalf("second Upsert: %v", err)
	}

	got, err := repo.GetByLearnerAndCompetency(ctx, tx, l.ID, "communication")
	if err != nil {
		t.Fatalf("GetByLearnerAndCompetency: %v", err)
	}
	if got.Level != 2 || got.Source != assessment.ScaffoldingSourceGaming {
		t.Fatalf("upsert did not replace row: %+v", got)
	}

	states, err := repo.ListByLearnerID(ctx, tx, l.ID)
	if err != nil || len(states) != 1 {
		t.Fatalf("ListByLearnerID: err=%v len=%d, want one row per competency", err, len(states))
	}

	if _, err := repo.GetByLearnerAndCompetency(ctx, tx, l.ID, "teamwork"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("missing state: err=%v, want ErrNotFound", err)
	}
}

func TestGamingIncidentRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	ctx := context.Background()
	repo := NewGamingIncidentRepo(db, testutil.Logger(t))

	l := &learner.Learner{
		ID:        uuid.New(),
		Email:     "incidentrepo@example.com",
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
		CompetencyType: "teamwork",
		Status:         assessment.SessionActive,
		StartedAt:      time.Now().UTC(),
	}
	if err := tx.WithContext(ctx).Create(s).Error; err != nil {
		t.Fatalf("seed session: %v", err)
	}

	inc := &assessment.GamingIncident{
		ID:                  uuid.New(),
		LearnerID:           l.ID,
		SessionID:           s.ID,
		RiskLevel:           "high",
		RiskScore:           0.71,
		Patterns:            datatypes.JSON([]byte(`[]`)),
		RecommendedAction:   "flag_for_review",
		Priority:            "urgent",
		HumanReviewRequired: true,
		AnalyzedAt:          time.Now().UTC(),
	}
	if _, err := repo.Create(ctx, tx, []*assessment.GamingIncident{inc}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if rows, err := repo.ListByLearnerID(ctx, tx, l.ID, 0); err != nil || len(rows) != 1 {
		t.Fatalf("ListByLearnerID: err=%v len=%d", err, len(rows))
	}
	if rows, err := repo.ListUnresolved(ctx, tx, "high", 0); err != nil || len(rows) != 1 {
		t.Fatalf("ListUnresolved: err=%v len=%d", err, len(rows))
	}

	if err := repo.Resolve(ctx, tx, l.ID, inc.ID, "reviewed, no action"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rows, err := repo.ListUnresolved(ctx, tx, "high", 0); err != nil || len(rows) != 0 {
		t.Fatalf("incident still unresolved: err=%v len=%d", err, len(rows))
	}
	if err := repo.Resolve(ctx, tx, l.ID, inc.ID, "again"); !errors.Is(err, pkgerrors.ErrNotFound) {
		t.Fatalf("double resolve: err=%v, want ErrNotFound", err)
	}
}
