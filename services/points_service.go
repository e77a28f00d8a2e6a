package services

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

// LevelForPoints is the one level formula used everywhere a level is derived.
func LevelForPoints(points int) int {
	return points/100 + 1
}

// PointsService applies point deltas to a profile. Every mutation runs in a
// single transaction: points, level and the ledger row commit together.
type PointsService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewPointsService(db *gorm.DB, notifier *NotificationService) *PointsService {
	return &PointsService{db: db, notifier: notifier}
}

func (s *PointsService) AddPoints(userID uuid.UUID, delta int, reason, reference string) (*models.User, error) {
	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.addPointsTx(tx, userID, delta, reason, reference, &user)
	})
	if err != nil {
		return nil, err
	}

	s.notifyDelta(&user, delta, reason)
	return &user, nil
}

// addPointsTx is the transaction-scoped accrual used by the other rules so a
// milestone or referral payout commits atomically with its guard row.
func (s *PointsService) addPointsTx(tx *gorm.DB, userID uuid.UUID, delta int, reason, reference string, out *models.User) error {
	var user models.User
	if err := tx.First(&user, "id = ?", userID).Error; err != nil {
		return err
	}

	newPoints := user.Points + delta
	if newPoints < 0 {
		newPoints = 0
	}

	user.Points = newPoints
	user.Level = LevelForPoints(newPoints)
	if err := tx.Model(&user).Updates(map[string]interface{}{
		"points": user.Points,
		"level":  user.Level,
	}).Error; err != nil {
		return err
	}

	entry := models.PointsTransaction{
		UserID:    userID,
		Delta:     delta,
		Balance:   user.Points,
		Reason:    reason,
		Reference: reference,
	}
	if err := tx.Create(&entry).Error; err != nil {
		return err
	}

	if out != nil {
		*out = user
	}
	return nil
}

func (s *PointsService) notifyDelta(user *models.User, delta int, reason string) {
	if s.notifier == nil || delta == 0 {
		return
	}

	notifType := "points_awarded"
	title := "Points earned"
	if delta < 0 {
		notifType = "points_spent"
		title = "Points spent"
	}

	go func() {
		if err := s.notifier.Notify(user.ID, notifType, title, reason, map[string]interface{}{
			"delta":   delta,
			"balance": user.Points,
			"level":   user.Level,
		}); err != nil {
			log.Printf("🔥 Failed to send points notification to user %s: %v", user.ID, err)
		}
	}()
}
