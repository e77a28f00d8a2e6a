package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
)

type AdminHandler struct {
	DB *gorm.DB
}

func NewAdminHandler(db *gorm.DB) *AdminHandler {
	return &AdminHandler{DB: db}
}

func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	query := h.DB.Model(&models.User{}).Order("created_at desc")
	if search := c.Query("search"); search != "" {
		query = query.Where("username ILIKE ? OR email ILIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	query.Count(&total)

	var users []models.User
	if err := query.Limit(pageSize).Offset(offset).Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch users"})
	}

	return c.JSON(fiber.Map{
		"users": users,
		"total": total,
		"page":  page,
	})
}

func (h *AdminHandler) GetUser(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	var stats models.UserStats
	h.DB.First(&stats, "user_id = ?", userID)

	return c.JSON(fiber.Map{"user": user, "stats": stats})
}

type UpdateUserStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active inactive suspended"`
}

func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	userID := c.Params("userId")

	var req UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := h.DB.Model(&models.User{}).Where("id = ?", userID).Update("status", req.Status)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user status"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	return c.JSON(fiber.Map{"status": req.Status})
}

func (h *AdminHandler) GetDashboardStats(c *fiber.Ctx) error {
	var totalUsers, activeUsers, totalPosts, totalDevotionals, completedReferrals int64
	h.DB.Model(&models.User{}).Count(&totalUsers)
	h.DB.Model(&models.User{}).Where("status = ?", "active").Count(&activeUsers)
	h.DB.Model(&models.CommunityPost{}).Count(&totalPosts)
	h.DB.Model(&models.Devotional{}).Count(&totalDevotionals)
	h.DB.Model(&models.Referral{}).Where("status = ?", "completed").Count(&completedReferrals)

	var pointsIssued int64
	h.DB.Model(&models.PointsTransaction{}).Where("delta > 0").Select("COALESCE(SUM(delta), 0)").Row().Scan(&pointsIssued)

	return c.JSON(fiber.Map{
		"total_users":         totalUsers,
		"active_users":        activeUsers,
		"total_posts":         totalPosts,
		"total_devotionals":   totalDevotionals,
		"completed_referrals": completedReferrals,
		"points_issued":       pointsIssued,
	})
}

type AchievementRequest struct {
	Code          string `json:"code" validate:"required,max=50"`
	Name          string `json:"name" validate:"required,max=255"`
	Description   string `json:"description" validate:"required"`
	Category      string `json:"category" validate:"required,max=50"`
	Points        int    `json:"points" validate:"required,min=1"`
	CriteriaType  string `json:"criteria_type" validate:"required"`
	CriteriaValue int    `json:"criteria_value" validate:"required,min=1"`
}

func (h *AdminHandler) CreateAchievement(c *fiber.Ctx) error {
	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	achievement := models.Achievement{
		Code:          req.Code,
		Name:          req.Name,
		Description:   req.Description,
		Category:      req.Category,
		Points:        req.Points,
		CriteriaType:  models.CriteriaType(req.CriteriaType),
		CriteriaValue: req.CriteriaValue,
	}
	if err := h.DB.Create(&achievement).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create achievement"})
	}

	return c.Status(fiber.StatusCreated).JSON(achievement)
}

func (h *AdminHandler) UpdateAchievement(c *fiber.Ctx) error {
	achievementID := c.Params("achievementId")
	var achievement models.Achievement
	if err := h.DB.First(&achievement, "id = ?", achievementID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
	}

	var req AchievementRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	achievement.Code = req.Code
	achievement.Name = req.Name
	achievement.Description = req.Description
	achievement.Category = req.Category
	achievement.Points = req.Points
	achievement.CriteriaType = models.CriteriaType(req.CriteriaType)
	achievement.CriteriaValue = req.CriteriaValue
	h.DB.Save(&achievement)

	return c.JSON(achievement)
}

func (h *AdminHandler) DeleteAchievement(c *fiber.Ctx) error {
	achievementID := c.Params("achievementId")
	result := h.DB.Delete(&models.Achievement{}, "id = ?", achievementID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete achievement"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Achievement not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type ReadingPlanRequest struct {
	Title        string  `json:"title" validate:"required,max=255"`
	Description  string  `json:"description" validate:"required"`
	DurationDays int     `json:"duration_days" validate:"required,min=1"`
	ImageURL     *string `json:"image_url" validate:"omitempty,url"`
	IsActive     *bool   `json:"is_active"`
}

func (h *AdminHandler) CreateReadingPlan(c *fiber.Ctx) error {
	var req ReadingPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan := models.ReadingPlan{
		Title:        req.Title,
		Description:  req.Description,
		DurationDays: req.DurationDays,
		ImageURL:     req.ImageURL,
		IsActive:     true,
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := h.DB.Create(&plan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create reading plan"})
	}

	return c.Status(fiber.StatusCreated).JSON(plan)
}

func (h *AdminHandler) UpdateReadingPlan(c *fiber.Ctx) error {
	planID := c.Params("planId")
	var plan models.ReadingPlan
	if err := h.DB.First(&plan, "id = ?", planID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reading plan not found"})
	}

	var req ReadingPlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan.Title = req.Title
	plan.Description = req.Description
	plan.DurationDays = req.DurationDays
	plan.ImageURL = req.ImageURL
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	h.DB.Save(&plan)

	return c.JSON(plan)
}

func (h *AdminHandler) DeleteReadingPlan(c *fiber.Ctx) error {
	planID := c.Params("planId")
	result := h.DB.Delete(&models.ReadingPlan{}, "id = ?", planID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete reading plan"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reading plan not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// DeletePost is the moderation path: no author check.
func (h *AdminHandler) DeletePost(c *fiber.Ctx) error {
	postID := c.Params("postId")
	result := h.DB.Delete(&models.CommunityPost{}, "id = ?", postID)

	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete post"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AdminHandler) ListReferrals(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	query := h.DB.Preload("Referrer").Preload("ReferredUser").Order("created_at desc")
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var referrals []models.Referral
	if err := query.Limit(pageSize).Offset(offset).Find(&referrals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch referrals"})
	}

	return c.JSON(referrals)
}
