package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func AdminRoutes(app *fiber.App, h *handlers.AdminHandler) {
	admin := app.Group("/api/v1/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/dashboard", h.GetDashboardStats)

	admin.Get("/users", h.ListUsers)
	admin.Get("/users/:userId", h.GetUser)
	admin.Put("/users/:userId/status", h.UpdateUserStatus)

	achievements := admin.Group("/achievements")
	achievements.Post("", h.CreateAchievement)
	achievements.Put("/:achievementId", h.UpdateAchievement)
	achievements.Delete("/:achievementId", h.DeleteAchievement)

	plans := admin.Group("/reading-plans")
	plans.Post("", h.CreateReadingPlan)
	plans.Put("/:planId", h.UpdateReadingPlan)
	plans.Delete("/:planId", h.DeleteReadingPlan)

	admin.Delete("/posts/:postId", h.DeletePost)
	admin.Get("/referrals", h.ListReferrals)
}
