package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/notifications"
)

const (
	ReferrerRewardPoints = 100
	ReferredRewardPoints = 50
)

// ReferralService completes pending referrals. The status flip and both point
// grants commit in one transaction; a guarded UPDATE on status makes
// concurrent completion a no-op for the loser.
type ReferralService struct {
	db       *gorm.DB
	points   *PointsService
	notifier *NotificationService
}

func NewReferralService(db *gorm.DB, points *PointsService, notifier *NotificationService) *ReferralService {
	return &ReferralService{db: db, points: points, notifier: notifier}
}

// ValidateCode resolves a referral code to its owner.
func (s *ReferralService) ValidateCode(code string) (*models.User, error) {
	var referrer models.User
	if err := s.db.Where("referral_code = ?", code).First(&referrer).Error; err != nil {
		return nil, err
	}
	return &referrer, nil
}

// Complete transitions one referral pending -> completed and pays both sides.
func (s *ReferralService) Complete(referralID uuid.UUID) error {
	var referral models.Referral
	if err := s.db.Preload("Referrer").Preload("ReferredUser").First(&referral, "id = ?", referralID).Error; err != nil {
		return err
	}
	return s.complete(&referral)
}

// CompleteForUser completes the pending referral for a newly active referred
// user, if one exists.
func (s *ReferralService) CompleteForUser(referredUserID uuid.UUID) error {
	var referral models.Referral
	err := s.db.Preload("Referrer").Preload("ReferredUser").
		Where("referred_user_id = ? AND status = ?", referredUserID, "pending").
		First(&referral).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}
	return s.complete(&referral)
}

func (s *ReferralService) complete(referral *models.Referral) error {
	completed := false
	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		res := tx.Model(&models.Referral{}).
			Where("id = ? AND status = ?", referral.ID, "pending").
			Updates(map[string]interface{}{
				"status":          "completed",
				"referrer_points": ReferrerRewardPoints,
				"referred_points": ReferredRewardPoints,
				"completed_at":    now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			// Someone else completed it first; nothing more to pay.
			return nil
		}

		reference := fmt.Sprintf("referral:%s", referral.ID)
		if err := s.points.addPointsTx(tx, referral.ReferrerID, ReferrerRewardPoints, "referral_reward", reference, nil); err != nil {
			return err
		}
		if err := s.points.addPointsTx(tx, referral.ReferredUserID, ReferredRewardPoints, "referral_welcome", reference, nil); err != nil {
			return err
		}
		completed = true
		return nil
	})
	if err != nil {
		return err
	}
	if !completed {
		return nil
	}

	if s.notifier != nil {
		go func() {
			err := s.notifier.Notify(referral.ReferrerID, "referral_completed", "Referral completed!",
				fmt.Sprintf("%s joined Journey through your invite. You earned %d points.", referral.ReferredUser.Username, ReferrerRewardPoints),
				map[string]interface{}{"points": ReferrerRewardPoints})
			if err != nil {
				log.Printf("🔥 Failed to send referral notification to user %s: %v", referral.ReferrerID, err)
			}
		}()
	}

	go notifications.SendEmail(
		referral.Referrer.Username,
		referral.Referrer.Email,
		"You've Earned Referral Points!",
		fmt.Sprintf("<h1>Congratulations!</h1><p>Someone you invited is now active on Journey. %d points have been added to your account.</p>", ReferrerRewardPoints),
	)

	log.Printf("✅ Completed referral %s: referrer %s +%d, referred %s +%d",
		referral.ID, referral.ReferrerID, ReferrerRewardPoints, referral.ReferredUserID, ReferredRewardPoints)
	return nil
}
