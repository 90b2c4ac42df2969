package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/ccis"
	domainassessment "github.com/yungbote/ccis-backend/internal/domain/assessment"
	domainlearner "github.com/yungbote/ccis-backend/internal/domain/learner"
	"github.com/yungbote/ccis-backend/internal/gaming"
	"github.com/yungbote/ccis-backend/internal/incidents"
	pkgerrors "github.com/yungbote/ccis-backend/internal/pkg/errors"
	"github.com/yungbote/ccis-backend/internal/platform/logger"
	"github.com/yungbote/ccis-backend/internal/repos"
)

// SubmitInput is one completed assessment session's evidence.
type SubmitInput struct {
	SessionID   uuid.UUID              `json:"session_id"`
	Competency  ccis.CompetencyType    `json:"competency"`
	Signals     ccis.BehavioralSignals `json:"signals"`
	TaskTimings []float64              `json:"task_timings_seconds"`
	HintCounts  []int                  `json:"hint_counts"`
	ErrorCounts []int                  `json:"error_counts"`
	Environment gaming.Environment     `json:"environment"`
}

// SubmitOutcome pairs the persisted assessment row with both engine verdicts.
type SubmitOutcome struct {
	AssessmentID uuid.UUID             `json:"assessment_id"`
	Result       ccis.Result           `json:"result"`
	Gaming       gaming.AnalysisResult `json:"gaming"`
}

type AssessmentService interface {
	StartSession(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (*domainassessment.Session, error)
	Submit(ctx context.Context, learnerID uuid.UUID, input SubmitInput) (*SubmitOutcome, error)
	CalculateOverall(ctx context.Context, learnerID uuid.UUID, inputs []ccis.CompetencySignals) (ccis.OverallResult, error)
	RecordEvent(ctx context.Context, learnerID uuid.UUID, sessionID *uuid.UUID, eventType string, payload datatypes.JSON) (*domainlearner.LearnerEvent, error)
}

type assessmentService struct {
	db             *gorm.DB
	log            *logger.Logger
	sessionRepo    repos.SessionRepo
	assessmentRepo repos.CompetencyAssessmentRepo
	incidentRepo   repos.GamingIncidentRepo
	eventRepo      repos.LearnerEventRepo
	scaffolding    ScaffoldingService
	bus            incidents.Bus
}

func NewAssessmentService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.SessionRepo,
	assessmentRepo repos.CompetencyAssessmentRepo,
	incidentRepo repos.GamingIncidentRepo,
	eventRepo repos.LearnerEventRepo,
	scaffolding ScaffoldingService,
	bus incidents.Bus,
) AssessmentService {
	serviceLog := log.With("service", "AssessmentService")
	return &assessmentService{
		db:             db,
		log:            serviceLog,
		sessionRepo:    sessionRepo,
		assessmentRepo: assessmentRepo,
		incidentRepo:   incidentRepo,
		eventRepo:      eventRepo,
		scaffolding:    scaffolding,
		bus:            bus,
	}
}

func (s *assessmentService) StartSession(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (*domainassessment.Session, error) {
	if competency == "" {
		return nil, fmt.Errorf("%w: competency required", pkgerrors.ErrInvalidArgument)
	}

	active, err := s.sessionRepo.GetActiveByLearnerID(ctx, nil, learnerID)
	if err != nil {
		return nil, fmt.Errorf("check active sessions: %w", err)
	}
	for _, a := range active {
		if a.CompetencyType == string(competency) {
			return nil, fmt.Errorf("%w: active session for %s already exists", pkgerrors.ErrBusinessRule, competency)
		}
	}

	session := &domainassessment.Session{
		ID:             uuid.New(),
		LearnerID:      learnerID,
		CompetencyType: string(competency),
		Status:         domainassessment.SessionActive,
		StartedAt:      time.Now().UTC(),
	}
	if _, err := s.sessionRepo.Create(ctx, nil, []*domainassessment.Session{session}); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

// Submit scores a completed session. The two engines are independent and run
// concurrently; persistence happens in one transaction afterward so a failed
// write never leaves a half-recorded assessment.
func (s *assessmentService) Submit(ctx context.Context, learnerID uuid.UUID, input SubmitInput) (*SubmitOutcome, error) {
	session, err := s.sessionRepo.GetByID(ctx, nil, input.SessionID)
	if err != nil {
		return nil, err
	}
	if session.LearnerID != learnerID {
		return nil, fmt.Errorf("%w: session belongs to another learner", pkgerrors.ErrUnauthorized)
	}
	if session.Status != domainassessment.SessionActive {
		return nil, fmt.Errorf("%w: session is %s", pkgerrors.ErrBusinessRule, session.Status)
	}
	if session.CompetencyType != string(input.Competency) {
		return nil, fmt.Errorf("%w: session is for %s", pkgerrors.ErrBusinessRule, session.CompetencyType)
	}

	history, err := s.loadHistory(ctx, learnerID, input.Competency)
	if err != nil {
		return nil, err
	}

	var (
		result   ccis.Result
		analysis gaming.AnalysisResult
	)
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		result, err = ccis.Calculate(input.Signals)
		return err
	})
	g.Go(func() error {
		var err error
		analysis, err = gaming.AnalyzeSession(gaming.SessionInput{
			Competency:  input.Competency,
			Signals:     input.Signals,
			TaskTimings: input.TaskTimings,
			HintCounts:  input.HintCounts,
			ErrorCounts: input.ErrorCounts,
			Environment: input.Environment,
			History:     history,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	row := &domainassessment.CompetencyAssessment{
		ID:             uuid.New(),
		LearnerID:      learnerID,
		SessionID:      session.ID,
		CompetencyType: string(input.Competency),
		Level:          int(result.Level),
		RawScore:       result.RawScore,
		Confidence:     int(result.Confidence),
		Breakdown:      mustJSON(result.Breakdown),
		GamingResult:   mustJSON(analysis),
		Intervention:   mustJSON(result.Intervention),
		CalculatedAt:   result.CalculatedAt,
	}

	var incident *domainassessment.GamingIncident
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.assessmentRepo.Create(ctx, tx, []*domainassessment.CompetencyAssessment{row}); err != nil {
			return fmt.Errorf("persist assessment: %w", err)
		}

		if analysis.RecommendedAction == gaming.ActionInvalidateSession {
			if err := s.sessionRepo.Invalidate(ctx, tx, session.ID); err != nil {
				return fmt.Errorf("invalidate session: %w", err)
			}
		} else {
			if err := s.sessionRepo.Complete(ctx, tx, session.ID, input.Signals.TaskCount, input.Signals.AssessmentDuration); err != nil {
				return fmt.Errorf("complete session: %w", err)
			}
		}

		if analysis.RiskLevel != gaming.RiskNone && analysis.RiskLevel != gaming.RiskLow {
			incident = &domainassessment.GamingIncident{
				ID:                  uuid.New(),
				LearnerID:           learnerID,
				SessionID:           session.ID,
				RiskLevel:           string(analysis.RiskLevel),
				RiskScore:           analysis.OverallRiskScore,
				Patterns:            mustJSON(analysis.Patterns),
				RecommendedAction:   string(analysis.RecommendedAction),
				Priority:            string(analysis.InterventionPriority),
				HumanReviewRequired: analysis.HumanReviewRequired,
				AnalyzedAt:          analysis.AnalyzedAt,
			}
			if _, err := s.incidentRepo.Create(ctx, tx, []*domainassessment.GamingIncident{incident}); err != nil {
				return fmt.Errorf("persist incident: %w", err)
			}
		}

		event := &domainlearner.LearnerEvent{
			ID:        uuid.New(),
			LearnerID: learnerID,
			SessionID: &session.ID,
			Type:      "assessment_scored",
			Payload: mustJSON(map[string]any{
				"competency": input.Competency,
				"level":      result.Level,
				"raw_score":  result.RawScore,
				"risk_level": analysis.RiskLevel,
			}),
		}
		if _, err := s.eventRepo.Append(ctx, tx, []*domainlearner.LearnerEvent{event}); err != nil {
			return fmt.Errorf("append event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The level may have changed; drop the cached scaffolding configuration.
	s.scaffolding.InvalidateCache(ctx, learnerID, input.Competency)

	if incident != nil {
		msg := incidents.Message{
			IncidentID: incident.ID,
			LearnerID:  learnerID,
			SessionID:  session.ID,
			RiskLevel:  incident.RiskLevel,
			RiskScore:  incident.RiskScore,
			Action:     incident.RecommendedAction,
			Priority:   incident.Priority,
			AnalyzedAt: incident.AnalyzedAt,
		}
		if err := s.bus.Publish(ctx, msg); err != nil {
			s.log.Warn("failed to publish incident", "incident_id", incident.ID.String(), "error", err)
		}
	}

	return &SubmitOutcome{AssessmentID: row.ID, Result: result, Gaming: analysis}, nil
}

func (s *assessmentService) CalculateOverall(ctx context.Context, learnerID uuid.UUID, inputs []ccis.CompetencySignals) (ccis.OverallResult, error) {
	overall, err := ccis.CalculateOverall(inputs)
	if err != nil {
		return ccis.OverallResult{}, err
	}

	event := &domainlearner.LearnerEvent{
		ID:        uuid.New(),
		LearnerID: learnerID,
		Type:      "overall_calculated",
		Payload: mustJSON(map[string]any{
			"overall_score":        overall.OverallScore,
			"readiness_percentage": overall.ReadinessPercentage,
		}),
	}
	if _, err := s.eventRepo.Append(ctx, nil, []*domainlearner.LearnerEvent{event}); err != nil {
		s.log.Warn("failed to append overall event", "error", err)
	}

	return overall, nil
}

// loadHistory assembles the historical aggregate from prior assessment rows.
// No prior rows means nil history, which skips the historical detector.
// RecordEvent appends one behavioral event to the learner's stream. When the
// event names a session it must belong to the caller.
func (s *assessmentService) RecordEvent(ctx context.Context, learnerID uuid.UUID, sessionID *uuid.UUID, eventType string, payload datatypes.JSON) (*domainlearner.LearnerEvent, error) {
	if eventType == "" {
		return nil, fmt.Errorf("%w: event type required", pkgerrors.ErrInvalidArgument)
	}
	if sessionID != nil {
		sess, err := s.sessionRepo.GetByID(ctx, nil, *sessionID)
		if err != nil {
			return nil, err
		}
		if sess.LearnerID != learnerID {
			return nil, fmt.Errorf("%w: session %s", pkgerrors.ErrNotFound, sessionID)
		}
	}
	if len(payload) == 0 {
		payload = datatypes.JSON([]byte(`{}`))
	}
	ev := &domainlearner.LearnerEvent{
		ID:        uuid.New(),
		LearnerID: learnerID,
		SessionID: sessionID,
		Type:      eventType,
		Payload:   payload,
	}
	created, err := s.eventRepo.Append(ctx, nil, []*domainlearner.LearnerEvent{ev})
	if err != nil {
		return nil, fmt.Errorf("append event: %w", err)
	}
	return created[0], nil
}

func (s *assessmentService) loadHistory(ctx context.Context, learnerID uuid.UUID, competency ccis.CompetencyType) (*gaming.HistoricalData, error) {
	rows, err := s.assessmentRepo.ListByLearnerID(ctx, nil, learnerID, string(competency), 20)
	if err != nil {
		return nil, fmt.Errorf("load assessment history: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	sessions := make([]gaming.PastSession, 0, len(rows))
	var sum float64
	for _, r := range rows {
		sessions = append(sessions, gaming.PastSession{
			Competency: ccis.CompetencyType(r.CompetencyType),
			RawScore:   r.RawScore,
			RecordedAt: r.CalculatedAt,
		})
		sum += r.RawScore
	}

	return &gaming.HistoricalData{
		Sessions: sessions,
		CompetencyAverages: map[ccis.CompetencyType]float64{
			competency: sum / float64(len(rows)),
		},
	}, nil
}

func mustJSON(v any) datatypes.JSON {
	raw, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON([]byte(`{}`))
	}
	return datatypes.JSON(raw)
}
