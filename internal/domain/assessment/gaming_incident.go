package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
)

// GamingIncident records a session whose gaming analysis crossed the medium
// risk line. One row per flagged analysis; resolution is tracked in place.
type GamingIncident struct {
	ID        uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID uuid.UUID        `gorm:"type:uuid;not null;index" json:"learner_id"`
	Learner   *learner.Learner `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	SessionID uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	Session   *Session         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`

	RiskLevel           string         `gorm:"not null;column:risk_level;index" json:"risk_level"`
	RiskScore           float64        `gorm:"not null;column:risk_score" json:"risk_score"`
	Patterns            datatypes.JSON `gorm:"type:jsonb;column:patterns" json:"patterns"`
	RecommendedAction   string         `gorm:"not null;column:recommended_action" json:"recommended_action"`
	Priority            string         `gorm:"not null;column:priority" json:"priority"`
	HumanReviewRequired bool           `gorm:"not null;default:false;column:human_review_required" json:"human_review_required"`

	ResolvedAt *time.Time `gorm:"column:resolved_at" json:"resolved_at,omitempty"`
	Resolution string     `gorm:"column:resolution" json:"resolution,omitempty"`

	AnalyzedAt time.Time      `gorm:"not null;column:analyzed_at;index" json:"analyzed_at"`
	CreatedAt  time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (GamingIncident) TableName() string { return "gaming_incident" }
