package learner

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LearnerToken struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	LearnerID    uuid.UUID      `gorm:"index;not null" json:"learner_id"`
	Learner      *Learner       `gorm:"constraint:OnDelete:CASCADE;foreignKey:LearnerID;references:ID" json:"learner,omitempty"`
	AccessToken  string         `gorm:"uniqueIndex;not null;column:access_token" json:"access_token"`
	RefreshToken string         `gorm:"uniqueIndex;not null;column:refresh_token" json:"refresh_token"`
	ExpiresAt    time.Time      `gorm:"column:expires_at" json:"expires_at"`
	CreatedAt    time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (LearnerToken) TableName() string { return "learner_token" }
