package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func DevotionalRoutes(app *fiber.App, h *handlers.DevotionalHandler) {
	devotionals := app.Group("/api/v1/devotionals", middleware.Protected())
	devotionals.Post("", h.CreateDevotional)
	devotionals.Get("", h.ListDevotionals)
	devotionals.Get("/:devotionalId", h.GetDevotional)
	devotionals.Put("/:devotionalId", h.UpdateDevotional)
	devotionals.Delete("/:devotionalId", h.DeleteDevotional)
}
