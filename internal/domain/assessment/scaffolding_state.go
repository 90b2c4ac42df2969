package assessment

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/ccis-backend/internal/domain/learner"
)

const (
	ScaffoldingSourceBaseline    = "baseline"
	ScaffoldingSourceOptimized   = "optimized"
	ScaffoldingSourceGaming      = "gaming_adjustment"
	ScaffoldingSourceAdvancement = "advancement"
)

// ScaffoldingState is the active support configuration per learner and
// competency. Upserted on each adjustment; one current row per pair.
type ScaffoldingState struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_scaffolding_learner_competency,unique" json:"learner_id"`
	Learner        *learner.Learner `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	CompetencyType string           `gorm:"not null;column:competency_type;index:idx_scaffolding_learner_competency,unique" json:"competency_type"`

	Level  int            `gorm:"not null;column:level" json:"level"`
	Config datatypes.JSON `gorm:"type:jsonb;column:config;not null" json:"config"`
	Source string         `gorm:"not null;column:source" json:"source"`

	AppliedAt time.Time      `gorm:"not null;column:applied_at" json:"applied_at"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (ScaffoldingState) TableName() string { return "scaffolding_state" }
