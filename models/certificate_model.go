package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Certificate is the generated PDF awarded for completing a reading plan.
type Certificate struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	ReadingPlanID  uuid.UUID `gorm:"type:uuid;not null" json:"reading_plan_id"`
	PlanTitle      string    `gorm:"size:255;not null" json:"plan_title"`
	CertificateURL string    `gorm:"size:255;not null" json:"certificate_url"`
	CompletionDate time.Time `gorm:"not null" json:"completion_date"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c *Certificate) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
