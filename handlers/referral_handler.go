package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/services"
)

type ReferralHandler struct {
	DB        *gorm.DB
	Referrals *services.ReferralService
}

func NewReferralHandler(db *gorm.DB, referrals *services.ReferralService) *ReferralHandler {
	return &ReferralHandler{DB: db, Referrals: referrals}
}

// GetMyReferralInfo returns the caller's code and everyone they invited.
func (h *ReferralHandler) GetMyReferralInfo(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var referrals []models.Referral
	if err := h.DB.Preload("ReferredUser").
		Where("referrer_id = ?", userID).
		Order("created_at desc").
		Find(&referrals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch referrals"})
	}

	totalEarned := 0
	for _, r := range referrals {
		totalEarned += r.ReferrerPoints
	}

	return c.JSON(fiber.Map{
		"referral_code": user.ReferralCode,
		"referrals":     referrals,
		"total_earned":  totalEarned,
	})
}

// ValidateCode checks a referral code before sign-up.
func (h *ReferralHandler) ValidateCode(c *fiber.Ctx) error {
	code := c.Params("code")
	referrer, err := h.Referrals.ValidateCode(code)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Invalid referral code"})
	}

	return c.JSON(fiber.Map{
		"valid":    true,
		"username": referrer.Username,
	})
}
