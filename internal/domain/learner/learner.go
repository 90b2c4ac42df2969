package learner

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Learner struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email      string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password   string    `gorm:"not null;column:password" json:"-"`
	FirstName  string    `gorm:"not null;column:first_name" json:"first_name"`
	LastName   string    `gorm:"not null;column:last_name" json:"last_name"`
	AvatarPath string    `gorm:"column:avatar_path" json:"avatar_path"`

	// Cultural context used by scaffolding adaptation.
	Region   string `gorm:"not null;default:'GLOBAL';column:region" json:"region"`
	Language string `gorm:"not null;default:'en';column:language" json:"language"`

	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Learner) TableName() string { return "learner" }
