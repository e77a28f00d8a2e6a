package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/services"
)

type PlanHandler struct {
	DB           *gorm.DB
	Activity     *services.ActivityService
	Certificates *services.CertificateService
}

func NewPlanHandler(db *gorm.DB, activity *services.ActivityService, certificates *services.CertificateService) *PlanHandler {
	return &PlanHandler{DB: db, Activity: activity, Certificates: certificates}
}

func (h *PlanHandler) ListPlans(c *fiber.Ctx) error {
	var plans []models.ReadingPlan
	if err := h.DB.Where("is_active = ?", true).Order("created_at desc").Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch reading plans"})
	}
	return c.JSON(plans)
}

func (h *PlanHandler) ListMyPlans(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var plans []models.UserReadingPlan
	if err := h.DB.Preload("ReadingPlan").
		Where("user_id = ?", userID).
		Order("started_at desc").
		Find(&plans).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch your plans"})
	}

	return c.JSON(plans)
}

func (h *PlanHandler) StartPlan(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	planID := c.Params("planId")

	var plan models.ReadingPlan
	if err := h.DB.First(&plan, "id = ? AND is_active = ?", planID, true).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Reading plan not found"})
	}

	userPlan := models.UserReadingPlan{
		UserID:        userID,
		ReadingPlanID: plan.ID,
		CurrentDay:    1,
		Status:        "active",
		StartedAt:     time.Now().UTC(),
	}
	if err := h.DB.Create(&userPlan).Error; err != nil {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Plan already started"})
	}

	if _, err := h.Activity.Track(userID, services.ActivityPlanStarted, services.TrackOptions{Reference: plan.ID.String()}); err != nil {
		log.Printf("🔥 Failed to track plan start for user %s: %v", userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(userPlan)
}

type PlanProgressRequest struct {
	CurrentDay int `json:"current_day" validate:"required,min=1"`
}

func (h *PlanHandler) UpdateProgress(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	planID := c.Params("planId")

	var userPlan models.UserReadingPlan
	if err := h.DB.Preload("ReadingPlan").
		First(&userPlan, "user_id = ? AND reading_plan_id = ? AND status = ?", userID, planID, "active").Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Active plan not found"})
	}

	var req PlanProgressRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if req.CurrentDay > userPlan.ReadingPlan.DurationDays {
		req.CurrentDay = userPlan.ReadingPlan.DurationDays
	}
	if req.CurrentDay < userPlan.CurrentDay {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Progress cannot go backwards"})
	}

	userPlan.CurrentDay = req.CurrentDay
	if err := h.DB.Save(&userPlan).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update progress"})
	}

	return c.JSON(userPlan)
}

func (h *PlanHandler) CompletePlan(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	planID := c.Params("planId")

	var userPlan models.UserReadingPlan
	if err := h.DB.Preload("ReadingPlan").
		First(&userPlan, "user_id = ? AND reading_plan_id = ?", userID, planID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Plan not found"})
	}

	// Guarded flip so a double submit completes (and pays) only once.
	now := time.Now().UTC()
	res := h.DB.Model(&models.UserReadingPlan{}).
		Where("id = ? AND status = ?", userPlan.ID, "active").
		Updates(map[string]interface{}{
			"status":       "completed",
			"current_day":  userPlan.ReadingPlan.DurationDays,
			"completed_at": now,
		})
	if res.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to complete plan"})
	}
	if res.RowsAffected == 0 {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Plan already completed"})
	}

	result, err := h.Activity.Track(userID, services.ActivityPlanCompleted, services.TrackOptions{Reference: userPlan.ReadingPlan.ID.String()})
	if err != nil {
		log.Printf("🔥 Failed to track plan completion for user %s: %v", userID, err)
	}

	var user models.User
	if err := h.DB.First(&user, "id = ?", userID).Error; err == nil {
		go h.Certificates.GenerateForPlanCompletion(user, userPlan.ReadingPlan)
	}

	return c.JSON(fiber.Map{
		"completed": true,
		"result":    result,
	})
}
