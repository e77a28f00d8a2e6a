package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserStats carries the per-user activity counters read by achievement evaluation.
type UserStats struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`

	VersesRead            int `gorm:"not null;default:0" json:"verses_read"`
	ChaptersCompleted     int `gorm:"not null;default:0" json:"chapters_completed"`
	DevotionalsCreated    int `gorm:"not null;default:0" json:"devotionals_created"`
	PrayersShared         int `gorm:"not null;default:0" json:"prayers_shared"`
	FriendsCount          int `gorm:"not null;default:0" json:"friends_count"`
	ReadingTimeMinutes    int `gorm:"not null;default:0" json:"reading_time_minutes"`
	CommunityPosts        int `gorm:"not null;default:0" json:"community_posts"`
	ReadingPlansStarted   int `gorm:"not null;default:0" json:"reading_plans_started"`
	ReadingPlansCompleted int `gorm:"not null;default:0" json:"reading_plans_completed"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *UserStats) BeforeCreate(tx *gorm.DB) error {
	ensureID(&s.ID)
	return nil
}
