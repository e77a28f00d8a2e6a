package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func PlanRoutes(app *fiber.App, h *handlers.PlanHandler) {
	api := app.Group("/api/v1/reading-plans")
	api.Get("", h.ListPlans)

	protected := app.Group("/api/v1/reading-plans", middleware.Protected())
	protected.Get("/me", h.ListMyPlans)
	protected.Post("/:planId/start", h.StartPlan)
	protected.Put("/:planId/progress", h.UpdateProgress)
	protected.Post("/:planId/complete", h.CompletePlan)
}
