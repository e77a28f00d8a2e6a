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

type AchievementResult struct {
	NewlyUnlocked []models.Achievement `json:"newly_unlocked"`
	PointsAwarded int                  `json:"points_awarded"`
}

// AchievementService evaluates the static catalog against a user's profile and
// stats snapshot and unlocks anything newly satisfied, exactly once.
type AchievementService struct {
	db       *gorm.DB
	points   *PointsService
	notifier *NotificationService
}

func NewAchievementService(db *gorm.DB, points *PointsService, notifier *NotificationService) *AchievementService {
	return &AchievementService{db: db, points: points, notifier: notifier}
}

func (s *AchievementService) CheckAndAward(userID uuid.UUID) (*AchievementResult, error) {
	result := &AchievementResult{NewlyUnlocked: []models.Achievement{}}

	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	var stats models.UserStats
	if err := s.db.First(&stats, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}

	var unlockedIDs []uuid.UUID
	if err := s.db.Model(&models.UserAchievement{}).
		Where("user_id = ?", userID).
		Pluck("achievement_id", &unlockedIDs).Error; err != nil {
		return nil, err
	}
	unlocked := make(map[uuid.UUID]bool, len(unlockedIDs))
	for _, id := range unlockedIDs {
		unlocked[id] = true
	}

	var catalog []models.Achievement
	if err := s.db.Order("sort_order asc").Find(&catalog).Error; err != nil {
		return nil, err
	}

	for _, achievement := range catalog {
		if unlocked[achievement.ID] {
			continue
		}
		if !criteriaMet(achievement, &user, &stats) {
			continue
		}

		awarded, err := s.unlock(userID, achievement)
		if err != nil {
			// One failed unlock must not abort the rest of the sweep.
			log.Printf("🔥 Failed to unlock achievement %s for user %s: %v", achievement.Code, userID, err)
			continue
		}
		if !awarded {
			continue
		}

		result.NewlyUnlocked = append(result.NewlyUnlocked, achievement)
		result.PointsAwarded += achievement.Points
		s.notifyUnlock(userID, achievement)
	}

	return result, nil
}

// unlock inserts the UserAchievement row and pays the bonus in one
// transaction. The unique (user, achievement) index makes concurrent sweeps
// award at most once; the loser of the race sees RowsAffected == 0.
func (s *AchievementService) unlock(userID uuid.UUID, achievement models.Achievement) (bool, error) {
	awarded := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		row := models.UserAchievement{
			UserID:        userID,
			AchievementID: achievement.ID,
			PointsAwarded: achievement.Points,
			UnlockedAt:    time.Now().UTC(),
		}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		if err := s.points.addPointsTx(tx, userID, achievement.Points, "achievement", achievement.Code, nil); err != nil {
			return err
		}
		awarded = true
		return nil
	})
	return awarded, err
}

func (s *AchievementService) notifyUnlock(userID uuid.UUID, achievement models.Achievement) {
	if s.notifier == nil {
		return
	}
	go func() {
		err := s.notifier.Notify(userID, "achievement_unlocked", "Achievement unlocked!",
			fmt.Sprintf("%s — %s (+%d points)", achievement.Name, achievement.Description, achievement.Points),
			map[string]interface{}{"code": achievement.Code, "points": achievement.Points})
		if err != nil {
			log.Printf("🔥 Failed to send achievement notification to user %s: %v", userID, err)
		}
	}()
}

func criteriaMet(a models.Achievement, user *models.User, stats *models.UserStats) bool {
	switch a.CriteriaType {
	case models.CriteriaPoints:
		return user.Points >= a.CriteriaValue
	case models.CriteriaStreak:
		return user.LongestStreak >= a.CriteriaValue
	case models.CriteriaVersesRead:
		return stats.VersesRead >= a.CriteriaValue
	case models.CriteriaChaptersCompleted:
		return stats.ChaptersCompleted >= a.CriteriaValue
	case models.CriteriaDevotionalsCreated:
		return stats.DevotionalsCreated >= a.CriteriaValue
	case models.CriteriaPrayersShared:
		return stats.PrayersShared >= a.CriteriaValue
	case models.CriteriaFriendsCount:
		return stats.FriendsCount >= a.CriteriaValue
	case models.CriteriaReadingTime:
		return stats.ReadingTimeMinutes >= a.CriteriaValue
	case models.CriteriaCommunityPosts:
		return stats.CommunityPosts >= a.CriteriaValue
	case models.CriteriaPlansCompleted:
		return stats.ReadingPlansCompleted >= a.CriteriaValue
	case models.CriteriaAccountAgeDays:
		return time.Since(user.CreatedAt) >= time.Duration(a.CriteriaValue)*24*time.Hour
	default:
		log.Printf("Warning: unknown achievement criteria type %q on %s", a.CriteriaType, a.Code)
		return false
	}
}
