package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
)

// CompetencyAssessment is one scored assessment: the CCIS result for a single
// competency, with the per-signal breakdown and embedded gaming/intervention
// flags stored as JSON.
type CompetencyAssessment struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"learner_id"`
	Learner        *learner.Learner `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	SessionID      uuid.UUID        `gorm:"type:uuid;not null;index" json:"session_id"`
	Session        *Session         `gorm:"constraint:OnDelete:CASCADE;foreignKey:SessionID;references:ID" json:"session,omitempty"`
	CompetencyType string           `gorm:"not null;column:competency_type;index" json:"competency_type"`

	Level      int     `gorm:"not null;column:level" json:"level"`
	RawScore   float64 `gorm:"not null;column:raw_score" json:"raw_score"`
	Confidence int     `gorm:"not null;column:confidence" json:"confidence"`

	Breakdown    datatypes.JSON `gorm:"type:jsonb;column:breakdown" json:"breakdown"`
	GamingResult datatypes.JSON `gorm:"type:jsonb;column:gaming_result" json:"gaming_result,omitempty"`
	Intervention datatypes.JSON `gorm:"type:jsonb;column:intervention" json:"intervention,omitempty"`

	CalculatedAt time.Time      `gorm:"not null;column:calculated_at;index" json:"calculated_at"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (CompetencyAssessment) TableName() string { return "competency_assessment" }
