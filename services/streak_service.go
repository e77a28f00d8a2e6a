package services

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/journeyapp/journey_backend/models"
)

// streakMilestones maps a streak count to its one-time bonus payout.
var streakMilestones = map[int]int{
	3:   10,
	7:   25,
	14:  50,
	30:  100,
	50:  200,
	100: 500,
	365: 1000,
}

type StreakResult struct {
	Updated        bool `json:"updated"`
	Streak         int  `json:"streak"`
	LongestStreak  int  `json:"longest_streak"`
	MilestoneBonus int  `json:"milestone_bonus"`
}

// StreakService runs the daily streak state machine. Days are UTC calendar
// days: same day is a no-op, the previous day extends the streak, anything
// older resets it to 1.
type StreakService struct {
	db       *gorm.DB
	points   *PointsService
	notifier *NotificationService
}

func NewStreakService(db *gorm.DB, points *PointsService, notifier *NotificationService) *StreakService {
	return &StreakService{db: db, points: points, notifier: notifier}
}

func utcDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (s *StreakService) Update(userID uuid.UUID) (*StreakResult, error) {
	return s.updateAt(userID, time.Now())
}

// updateAt is split out so tests can pin "now".
func (s *StreakService) updateAt(userID uuid.UUID, now time.Time) (*StreakResult, error) {
	result := &StreakResult{}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		today := utcDate(now)

		if user.LastActivityDate != nil && utcDate(*user.LastActivityDate).Equal(today) {
			result.Updated = false
			result.Streak = user.Streak
			result.LongestStreak = user.LongestStreak
			return nil
		}

		newStreak := 1
		if user.LastActivityDate != nil && utcDate(*user.LastActivityDate).Equal(today.AddDate(0, 0, -1)) {
			newStreak = user.Streak + 1
		}

		longest := user.LongestStreak
		if newStreak > longest {
			longest = newStreak
		}

		if err := tx.Model(&user).Updates(map[string]interface{}{
			"streak":             newStreak,
			"longest_streak":     longest,
			"last_activity_date": today,
		}).Error; err != nil {
			return err
		}

		activity := models.StreakActivity{UserID: userID, ActivityDate: today}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&activity).Error; err != nil {
			return err
		}

		result.Updated = true
		result.Streak = newStreak
		result.LongestStreak = longest

		bonus, ok := streakMilestones[newStreak]
		if !ok {
			return nil
		}

		// The unique (user, streak) row is the idempotency guard: if another
		// invocation already recorded this milestone, the insert is a no-op
		// and no bonus is paid.
		milestone := models.StreakMilestone{UserID: userID, Streak: newStreak, BonusPoints: bonus}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&milestone)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		reference := fmt.Sprintf("streak:%d", newStreak)
		if err := s.points.addPointsTx(tx, userID, bonus, "streak_milestone", reference, nil); err != nil {
			return err
		}
		result.MilestoneBonus = bonus
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.MilestoneBonus > 0 && s.notifier != nil {
		bonus := result.MilestoneBonus
		streak := result.Streak
		go func() {
			err := s.notifier.Notify(userID, "streak_milestone", "Streak milestone reached!",
				fmt.Sprintf("You kept your streak going for %d days and earned %d bonus points.", streak, bonus),
				map[string]interface{}{"streak": streak, "bonus": bonus})
			if err != nil {
				log.Printf("🔥 Failed to send milestone notification to user %s: %v", userID, err)
			}
		}()
	}

	return result, nil
}
