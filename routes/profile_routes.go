package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func ProfileRoutes(app *fiber.App, h *handlers.ProfileHandler) {
	profile := app.Group("/api/v1/profile", middleware.Protected())
	profile.Get("/me", h.GetProfile)
	profile.Put("/me", h.UpdateProfile)
	profile.Get("/me/stats", h.GetMyStats)
	profile.Get("/me/transactions", h.GetMyTransactions)
}
