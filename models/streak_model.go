package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StreakActivity is the append-only daily activity log. One row per user per
// UTC calendar day, enforced by the unique index.
type StreakActivity struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_activity_date" json:"user_id"`
	ActivityDate time.Time `gorm:"not null;uniqueIndex:idx_user_activity_date" json:"activity_date"`
	CreatedAt    time.Time `json:"created_at"`
}

func (sa *StreakActivity) BeforeCreate(tx *gorm.DB) error {
	ensureID(&sa.ID)
	return nil
}

// StreakMilestone records a one-time milestone payout. The unique index on
// (user_id, streak) guarantees a bonus is never paid twice for the same count.
type StreakMilestone struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_milestone" json:"user_id"`
	Streak      int       `gorm:"not null;uniqueIndex:idx_user_milestone" json:"streak"`
	BonusPoints int       `gorm:"not null" json:"bonus_points"`
	CreatedAt   time.Time `json:"created_at"`
}

func (sm *StreakMilestone) BeforeCreate(tx *gorm.DB) error {
	ensureID(&sm.ID)
	return nil
}
