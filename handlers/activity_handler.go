package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/services"
)

type ActivityHandler struct {
	Activity *services.ActivityService
	Notifier *services.NotificationService
}

func NewActivityHandler(activity *services.ActivityService, notifier *services.NotificationService) *ActivityHandler {
	return &ActivityHandler{Activity: activity, Notifier: notifier}
}

type TrackActivityRequest struct {
	Kind      string `json:"kind" validate:"required"`
	Minutes   int    `json:"minutes,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// TrackActivity is the gamification entry point: one call per verse read,
// chapter finished, login, prayer, etc.
func (h *ActivityHandler) TrackActivity(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req TrackActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	kind := services.ActivityKind(req.Kind)
	if !services.ValidActivityKind(kind) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Unknown activity kind"})
	}

	result, err := h.Activity.Track(userID, kind, services.TrackOptions{
		Minutes:   req.Minutes,
		Reference: req.Reference,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to track activity"})
	}

	h.Notifier.PushProfileUpdate(result.Profile)

	return c.JSON(result)
}
