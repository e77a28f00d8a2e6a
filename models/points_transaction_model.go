package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PointsTransaction is the append-only points ledger. Balance is the user's
// total after the delta was applied.
type PointsTransaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Delta     int       `gorm:"not null" json:"delta"`
	Balance   int       `gorm:"not null" json:"balance"`
	Reason    string    `gorm:"size:50;not null" json:"reason"`
	Reference string    `gorm:"size:255" json:"reference"`
	CreatedAt time.Time `json:"created_at"`
}

func (pt *PointsTransaction) BeforeCreate(tx *gorm.DB) error {
	ensureID(&pt.ID)
	return nil
}
