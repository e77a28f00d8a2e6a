package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func ActivityRoutes(app *fiber.App, h *handlers.ActivityHandler) {
	activities := app.Group("/api/v1/activities", middleware.Protected())
	activities.Post("", h.TrackActivity)
}
