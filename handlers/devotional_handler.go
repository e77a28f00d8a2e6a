package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/services"
)

type DevotionalHandler struct {
	DB       *gorm.DB
	Activity *services.ActivityService
}

func NewDevotionalHandler(db *gorm.DB, activity *services.ActivityService) *DevotionalHandler {
	return &DevotionalHandler{DB: db, Activity: activity}
}

type DevotionalRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Verse    string  `json:"verse" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func (h *DevotionalHandler) CreateDevotional(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req DevotionalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	devotional := models.Devotional{
		AuthorID: userID,
		Title:    sanitizer.Sanitize(req.Title),
		Verse:    sanitizer.Sanitize(req.Verse),
		Content:  sanitizer.Sanitize(req.Content),
		ImageURL: req.ImageURL,
	}
	if err := h.DB.Create(&devotional).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create devotional"})
	}

	if _, err := h.Activity.Track(userID, services.ActivityDevotionalCreated, services.TrackOptions{Reference: devotional.ID.String()}); err != nil {
		log.Printf("🔥 Failed to track devotional activity for user %s: %v", userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(devotional)
}

func (h *DevotionalHandler) ListDevotionals(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	var devotionals []models.Devotional
	if err := h.DB.Preload("Author").
		Order("created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&devotionals).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch devotionals"})
	}

	return c.JSON(devotionals)
}

func (h *DevotionalHandler) GetDevotional(c *fiber.Ctx) error {
	devotionalID := c.Params("devotionalId")

	var devotional models.Devotional
	if err := h.DB.Preload("Author").First(&devotional, "id = ?", devotionalID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Devotional not found"})
	}

	return c.JSON(devotional)
}

func (h *DevotionalHandler) UpdateDevotional(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	devotionalID := c.Params("devotionalId")

	var devotional models.Devotional
	if err := h.DB.First(&devotional, "id = ? AND author_id = ?", devotionalID, userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Devotional not found"})
	}

	var req DevotionalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	devotional.Title = sanitizer.Sanitize(req.Title)
	devotional.Verse = sanitizer.Sanitize(req.Verse)
	devotional.Content = sanitizer.Sanitize(req.Content)
	devotional.ImageURL = req.ImageURL
	h.DB.Save(&devotional)

	return c.JSON(devotional)
}

func (h *DevotionalHandler) DeleteDevotional(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	devotionalID := c.Params("devotionalId")

	result := h.DB.Delete(&models.Devotional{}, "id = ? AND author_id = ?", devotionalID, userID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete devotional"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Devotional not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
