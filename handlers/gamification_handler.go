package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/services"
)

type GamificationHandler struct {
	DB          *gorm.DB
	Leaderboard *services.LeaderboardService
}

func NewGamificationHandler(db *gorm.DB, leaderboard *services.LeaderboardService) *GamificationHandler {
	return &GamificationHandler{DB: db, Leaderboard: leaderboard}
}

func (h *GamificationHandler) GetLeaderboard(c *fiber.Ctx) error {
	entries, err := h.Leaderboard.GetTop(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to retrieve leaderboard"})
	}
	return c.JSON(entries)
}

// ListAchievements returns the whole catalog annotated with the caller's
// unlock state.
func (h *GamificationHandler) ListAchievements(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var catalog []models.Achievement
	if err := h.DB.Order("sort_order asc").Find(&catalog).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	var unlocked []models.UserAchievement
	if err := h.DB.Where("user_id = ?", userID).Find(&unlocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}
	unlockedByID := make(map[uuid.UUID]models.UserAchievement, len(unlocked))
	for _, ua := range unlocked {
		unlockedByID[ua.AchievementID] = ua
	}

	result := make([]models.AchievementWithStatus, 0, len(catalog))
	for _, achievement := range catalog {
		entry := models.AchievementWithStatus{Achievement: achievement}
		if ua, ok := unlockedByID[achievement.ID]; ok {
			entry.Unlocked = true
			unlockedAt := ua.UnlockedAt
			entry.UnlockedAt = &unlockedAt
		}
		result = append(result, entry)
	}

	return c.JSON(result)
}

func (h *GamificationHandler) GetMyAchievements(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var unlocked []models.UserAchievement
	if err := h.DB.Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at desc").
		Find(&unlocked).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch achievements"})
	}

	return c.JSON(unlocked)
}

func (h *GamificationHandler) GetMyStreak(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var milestones []models.StreakMilestone
	h.DB.Where("user_id = ?", userID).Order("streak asc").Find(&milestones)

	return c.JSON(fiber.Map{
		"streak":             user.Streak,
		"longest_streak":     user.LongestStreak,
		"last_activity_date": user.LastActivityDate,
		"milestones":         milestones,
	})
}

func (h *GamificationHandler) ListMyCertificates(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var certificates []models.Certificate
	h.DB.Where("user_id = ?", userID).Order("completion_date desc").Find(&certificates)

	return c.JSON(certificates)
}
