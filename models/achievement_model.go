package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CriteriaType string

const (
	CriteriaPoints             CriteriaType = "points"
	CriteriaStreak             CriteriaType = "streak"
	CriteriaVersesRead         CriteriaType = "verses_read"
	CriteriaChaptersCompleted  CriteriaType = "chapters_completed"
	CriteriaDevotionalsCreated CriteriaType = "devotionals_created"
	CriteriaPrayersShared      CriteriaType = "prayers_shared"
	CriteriaFriendsCount       CriteriaType = "friends_count"
	CriteriaReadingTime        CriteriaType = "reading_time_minutes"
	CriteriaCommunityPosts     CriteriaType = "community_posts"
	CriteriaPlansCompleted     CriteriaType = "plans_completed"
	CriteriaAccountAgeDays     CriteriaType = "account_age_days"
)

// Achievement is one entry of the static catalog seeded at boot.
type Achievement struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key" json:"id"`
	Code          string       `gorm:"size:50;not null;unique" json:"code"`
	Name          string       `gorm:"size:255;not null" json:"name"`
	Description   string       `gorm:"type:text;not null" json:"description"`
	Category      string       `gorm:"size:50;not null" json:"category"`
	Points        int          `gorm:"not null" json:"points"`
	CriteriaType  CriteriaType `gorm:"size:50;not null" json:"criteria_type"`
	CriteriaValue int          `gorm:"not null" json:"criteria_value"`
	SortOrder     int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	ensureID(&a.ID)
	return nil
}

// UserAchievement records a single unlock. The unique index on
// (user_id, achievement_id) is what makes the unlock exactly-once.
type UserAchievement struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	PointsAwarded int       `gorm:"not null;default:0" json:"points_awarded"`
	UnlockedAt    time.Time `gorm:"not null" json:"unlocked_at"`

	Achievement Achievement `gorm:"foreignkey:AchievementID" json:"achievement,omitempty"`
}

func (ua *UserAchievement) BeforeCreate(tx *gorm.DB) error {
	ensureID(&ua.ID)
	return nil
}

// AchievementWithStatus is the catalog view returned to clients, annotated with
// the caller's unlock state.
type AchievementWithStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at,omitempty"`
}
