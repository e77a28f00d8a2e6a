package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func NotificationRoutes(app *fiber.App, h *handlers.NotificationHandler) {
	notifications := app.Group("/api/v1/notifications", middleware.Protected())
	notifications.Get("", h.ListNotifications)
	notifications.Put("/read-all", h.MarkAllRead)
	notifications.Put("/:notificationId/read", h.MarkRead)
}
