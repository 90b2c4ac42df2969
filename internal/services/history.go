package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/ccis"
	domainassessment "github.com/yungbote/ccis-backend/internal/domain/assessment"
	domainlearner "github.com/yungbote/ccis-backend/internal/domain/learner"
	"github.com/yungbote/ccis-backend/internal/gaming"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/repos"
)

type HistoryService interface {
	Assessment(ctx context.Context, learnerID, assessmentID uuid.UUID) (*domainassessment.CompetencyAssessment, error)
	Assessments(ctx context.Context, learnerID uuid.UUID, competency string, limit int) ([]*domainassessment.CompetencyAssessment, error)
	LatestPerCompetency(ctx context.Context, learnerID uuid.UUID) ([]*domainassessment.CompetencyAssessment, error)
	Sessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domainassessment.Session, error)
	Incidents(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domainassessment.GamingIncident, error)
	ResolveIncident(ctx context.Context, learnerID, incidentID uuid.UUID, resolution string) error
	Events(ctx context.Context, learnerID uuid.UUID, since time.Time, limit int) ([]*domainlearner.LearnerEvent, error)
	PreventionStrategy(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (gaming.PreventionStrategy, error)
}

type historyService struct {
	db             *gorm.DB
	log            *logger.Logger
	learnerRepo    repos.LearnerRepo
	sessionRepo    repos.SessionRepo
	assessmentRepo repos.CompetencyAssessmentRepo
	incidentRepo   repos.GamingIncidentRepo
	eventRepo      repos.LearnerEventRepo
}

func NewHistoryService(
	db *gorm.DB,
	log *logger.Logger,
	learnerRepo repos.LearnerRepo,
	sessionRepo repos.SessionRepo,
	assessmentRepo repos.CompetencyAssessmentRepo,
	incidentRepo repos.GamingIncidentRepo,
	eventRepo repos.LearnerEventRepo,
) HistoryService {
	serviceLog := log.With("service", "HistoryService")
	return &historyService{
		db:             db,
		log:            serviceLog,
		learnerRepo:    learnerRepo,
		sessionRepo:    sessionRepo,
		assessmentRepo: assessmentRepo,
		incidentRepo:   incidentRepo,
		eventRepo:      eventRepo,
	}
}

func (hs *historyService) Assessment(ctx context.Context, learnerID, assessmentID uuid.UUID) (*domainassessment.CompetencyAssessment, error) {
	rows, err := hs.assessmentRepo.GetByIDs(ctx, nil, []uuid.UUID{assessmentID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || rows[0].LearnerID != learnerID {
		return nil, fmt.Errorf("%w: assessment %s", pkgerrors.ErrNotFound, assessmentID)
	}
	return rows[0], nil
}

func (hs *historyService) Assessments(ctx context.Context, learnerID uuid.UUID, competency string, limit int) ([]*domainassessment.CompetencyAssessment, error) {
	return hs.assessmentRepo.ListByLearnerID(ctx, nil, learnerID, competency, limit)
}

func (hs *historyService) LatestPerCompetency(ctx context.Context, learnerID uuid.UUID) ([]*domainassessment.CompetencyAssessment, error) {
	return hs.assessmentRepo.LatestPerCompetency(ctx, nil, learnerID)
}

func (hs *historyService) Sessions(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domainassessment.Session, error) {
	return hs.sessionRepo.ListByLearnerID(ctx, nil, learnerID, limit)
}

func (hs *historyService) Incidents(ctx context.Context, learnerID uuid.UUID, limit int) ([]*domainassessment.GamingIncident, error) {
	return hs.incidentRepo.ListByLearnerID(ctx, nil, learnerID, limit)
}

func (hs *historyService) ResolveIncident(ctx context.Context, learnerID, incidentID uuid.UUID, resolution string) error {
	return hs.incidentRepo.Resolve(ctx, nil, learnerID, incidentID, resolution)
}

func (hs *historyService) Events(ctx context.Context, learnerID uuid.UUID, since time.Time, limit int) ([]*domainlearner.LearnerEvent, error) {
	return hs.eventRepo.GetByLearnerID(ctx, nil, learnerID, since, limit)
}

// PreventionStrategy assembles the learner's gaming profile from recorded
// incidents and maps it through the fixed measure catalog.
func (hs *historyService) PreventionStrategy(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (gaming.PreventionStrategy, error) {
	incidents, err := hs.incidentRepo.ListByLearnerID(ctx, nil, learnerID, 50)
	if err != nil {
		return gaming.PreventionStrategy{}, fmt.Errorf("load incidents: %w", err)
	}

	ls, err := hs.learnerRepo.GetByIDs(ctx, nil, []uuid.UUID{learnerID})
	if err != nil {
		return gaming.PreventionStrategy{}, fmt.Errorf("load learner: %w", err)
	}
	accountAgeDays := 0
	if len(ls) > 0 {
		accountAgeDays = int(time.Since(ls[0].CreatedAt).Hours() / 24)
	}

	var patterns []gaming.PatternType
	seen := map[gaming.PatternType]bool{}
	for _, inc := range incidents {
		var detected []gaming.DetectedPattern
		if err := json.Unmarshal(inc.Patterns, &detected); err != nil {
			hs.log.Warn("bad incident pattern payload", "incident_id", inc.ID.String(), "error", err)
			continue
		}
		for _, d := range detected {
			if !seen[d.Type] {
				seen[d.Type] = true
				patterns = append(patterns, d.Type)
			}
		}
	}

	profile := gaming.UserProfile{
		GamingPatterns: patterns,
		IncidentCount:  len(incidents),
		AccountAgeDays: accountAgeDays,
	}
	return gaming.GeneratePreventionStrategy(profile, competency), nil
}
