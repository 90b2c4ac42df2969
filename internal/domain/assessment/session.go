package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
)

const (
	SessionActive      = "active"
	SessionCompleted   = "completed"
	SessionInvalidated = "invalidated"
)

type Session struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"learner_id"`
	Learner        *learner.Learner `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	CompetencyType string           `gorm:"not null;column:competency_type;index" json:"competency_type"`
	Status         string           `gorm:"not null;default:'active';column:status;index" json:"status"`

	TaskCount       int     `gorm:"not null;default:0;column:task_count" json:"task_count"`
	DurationMinutes float64 `gorm:"not null;default:0;column:duration_minutes" json:"duration_minutes"`

	Metadata datatypes.JSON `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`

	StartedAt   time.Time  `gorm:"not null;default:now();column:started_at" json:"started_at"`
	CompletedAt *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Session) TableName() string { return "assessment_session" }
