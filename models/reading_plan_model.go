package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReadingPlan is an admin-managed plan (e.g. "Gospels in 30 Days").
type ReadingPlan struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Title        string    `gorm:"size:255;not null;unique" json:"title"`
	Description  string    `gorm:"type:text;not null" json:"description"`
	DurationDays int       `gorm:"not null" json:"duration_days"`
	ImageURL     *string   `gorm:"size:255" json:"image_url"`
	IsActive     bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *ReadingPlan) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

// UserReadingPlan tracks one user's progress through a plan.
type UserReadingPlan struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_plan" json:"user_id"`
	ReadingPlanID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_plan" json:"reading_plan_id"`
	CurrentDay    int       `gorm:"not null;default:1" json:"current_day"`
	Status        string    `gorm:"size:20;not null;default:'active'" json:"status"`

	ReadingPlan ReadingPlan `gorm:"foreignkey:ReadingPlanID" json:"reading_plan,omitempty"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (up *UserReadingPlan) BeforeCreate(tx *gorm.DB) error {
	ensureID(&up.ID)
	return nil
}
