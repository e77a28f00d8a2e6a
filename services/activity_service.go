package services

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

type ActivityKind string

const (
	ActivityVerseRead         ActivityKind = "verse_read"
	ActivityChapterCompleted  ActivityKind = "chapter_completed"
	ActivityDevotionalCreated ActivityKind = "devotional_created"
	ActivityPrayerShared      ActivityKind = "prayer_shared"
	ActivityDailyLogin        ActivityKind = "daily_login"
	ActivityPostCreated       ActivityKind = "post_created"
	ActivityCommentCreated    ActivityKind = "comment_created"
	ActivityFriendAdded       ActivityKind = "friend_added"
	ActivityPlanStarted       ActivityKind = "plan_started"
	ActivityPlanCompleted     ActivityKind = "plan_completed"
	ActivityReadingTime       ActivityKind = "reading_time"
)

// activityPoints maps an activity kind to its payout. reading_time pays per
// minute, carried in TrackOptions.Minutes.
var activityPoints = map[ActivityKind]int{
	ActivityVerseRead:         5,
	ActivityChapterCompleted:  25,
	ActivityDevotionalCreated: 15,
	ActivityPrayerShared:      10,
	ActivityDailyLogin:        10,
	ActivityPostCreated:       5,
	ActivityCommentCreated:    2,
	ActivityFriendAdded:       5,
	ActivityPlanStarted:       10,
	ActivityPlanCompleted:     100,
	ActivityReadingTime:       1,
}

// statsColumns maps an activity kind to the user_stats counter it bumps.
var statsColumns = map[ActivityKind]string{
	ActivityVerseRead:         "verses_read",
	ActivityChapterCompleted:  "chapters_completed",
	ActivityDevotionalCreated: "devotionals_created",
	ActivityPrayerShared:      "prayers_shared",
	ActivityPostCreated:       "community_posts",
	ActivityFriendAdded:       "friends_count",
	ActivityPlanStarted:       "reading_plans_started",
	ActivityPlanCompleted:     "reading_plans_completed",
	ActivityReadingTime:       "reading_time_minutes",
}

type TrackOptions struct {
	// Minutes is the elapsed reading time for reading_time activities.
	Minutes int
	// Reference is stored on the ledger entry (e.g. a verse or plan id).
	Reference string
}

type TrackResult struct {
	Kind         ActivityKind       `json:"kind"`
	PointsEarned int                `json:"points_earned"`
	Streak       *StreakResult      `json:"streak,omitempty"`
	Achievements *AchievementResult `json:"achievements,omitempty"`
	Profile      *models.User       `json:"profile"`
}

// ActivityService is the tracker facade: one tracked activity bumps the stats
// counter, pays the activity's points, runs the streak rule and then the
// achievement sweep.
type ActivityService struct {
	db           *gorm.DB
	points       *PointsService
	streaks      *StreakService
	achievements *AchievementService
	referrals    *ReferralService
}

func NewActivityService(db *gorm.DB, points *PointsService, streaks *StreakService, achievements *AchievementService, referrals *ReferralService) *ActivityService {
	return &ActivityService{
		db:           db,
		points:       points,
		streaks:      streaks,
		achievements: achievements,
		referrals:    referrals,
	}
}

func ValidActivityKind(kind ActivityKind) bool {
	_, ok := activityPoints[kind]
	return ok
}

func (s *ActivityService) Track(userID uuid.UUID, kind ActivityKind, opts TrackOptions) (*TrackResult, error) {
	if !ValidActivityKind(kind) {
		return nil, fmt.Errorf("unknown activity kind: %s", kind)
	}

	result := &TrackResult{Kind: kind}

	amount := 1
	if kind == ActivityReadingTime {
		if opts.Minutes <= 0 {
			return nil, fmt.Errorf("reading_time activity requires minutes > 0")
		}
		amount = opts.Minutes
	}

	if column, ok := statsColumns[kind]; ok {
		err := s.db.Model(&models.UserStats{}).
			Where("user_id = ?", userID).
			UpdateColumn(column, gorm.Expr(column+" + ?", amount)).Error
		if err != nil {
			return nil, err
		}
	}

	delta := activityPoints[kind] * amount
	user, err := s.points.AddPoints(userID, delta, string(kind), opts.Reference)
	if err != nil {
		return nil, err
	}
	result.PointsEarned = delta

	streak, err := s.streaks.Update(userID)
	if err != nil {
		return nil, err
	}
	result.Streak = streak

	// A referred user's first activity marks them active and completes the
	// pending referral.
	if s.referrals != nil {
		if err := s.referrals.CompleteForUser(userID); err != nil {
			log.Printf("🔥 Failed to complete referral for user %s: %v", userID, err)
		}
	}

	achievements, err := s.achievements.CheckAndAward(userID)
	if err != nil {
		return nil, err
	}
	result.Achievements = achievements

	// Re-read so the returned profile reflects milestone and achievement
	// bonuses as well as the base payout.
	var fresh models.User
	if err := s.db.First(&fresh, "id = ?", userID).Error; err != nil {
		result.Profile = user
	} else {
		result.Profile = &fresh
	}

	return result, nil
}
