package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func ReferralRoutes(app *fiber.App, h *handlers.ReferralHandler) {
	api := app.Group("/api/v1/referrals")
	api.Get("/validate/:code", h.ValidateCode)

	protected := app.Group("/api/v1/referrals", middleware.Protected())
	protected.Get("/me", h.GetMyReferralInfo)
}
