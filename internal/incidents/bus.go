package incidents

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is the wire form of a flagged gaming analysis, published so review
// dashboards and moderation workers see incidents as they happen.
type Message struct {
	IncidentID uuid.UUID `json:"incident_id"`
	LearnerID  uuid.UUID `json:"learner_id"`
	SessionID  uuid.UUID `json:"session_id"`
	RiskLevel  string    `json:"risk_level"`
	RiskScore  float64   `json:"risk_score"`
	Action     string    `json:"action"`
	Priority   string    `json:"priority"`
	AnalyzedAt time.Time `json:"analyzed_at"`
}

type Bus interface {
	Publish(ctx context.Context, msg Message) error
	StartForwarder(ctx context.Context, onMsg func(m Message)) error
	Close() error
}
