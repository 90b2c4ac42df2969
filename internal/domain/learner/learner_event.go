package learner

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// LearnerEvent is the append-only analytics stream: one row per behavioral
// event (task completion, hint request, assessment outcome). Never updated.
type LearnerEvent struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID uuid.UUID      `gorm:"type:uuid;not null;index" json:"learner_id"`
	SessionID *uuid.UUID     `gorm:"type:uuid;column:session_id;index" json:"session_id,omitempty"`
	Type      string         `gorm:"not null;column:type;index" json:"type"`
	Payload   datatypes.JSON `gorm:"type:jsonb;column:payload" json:"payload,omitempty"`
	CreatedAt time.Time      `gorm:"not null;default:now();index" json:"created_at"`
}

func (LearnerEvent) TableName() string { return "learner_event" }
