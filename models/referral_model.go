package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Referral struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ReferrerID     uuid.UUID `gorm:"type:uuid;not null" json:"referrer_id"`
	ReferredUserID uuid.UUID `gorm:"type:uuid;not null;unique" json:"referred_user_id"`
	Status         string    `gorm:"size:20;not null;default:'pending'" json:"status"`
	ReferrerPoints int       `gorm:"not null;default:0" json:"referrer_points"`
	ReferredPoints int       `gorm:"not null;default:0" json:"referred_points"`

	Referrer     User `gorm:"foreignkey:ReferrerID" json:"referrer,omitempty"`
	ReferredUser User `gorm:"foreignkey:ReferredUserID" json:"referred_user,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (r *Referral) BeforeCreate(tx *gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
