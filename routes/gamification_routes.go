package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func GamificationRoutes(app *fiber.App, h *handlers.GamificationHandler) {
	api := app.Group("/api/v1")

	gamification := api.Group("/gamification")
	gamification.Get("/leaderboard", h.GetLeaderboard)

	userGamification := api.Group("/gamification", middleware.Protected())
	userGamification.Get("/achievements", h.ListAchievements)
	userGamification.Get("/achievements/me", h.GetMyAchievements)
	userGamification.Get("/streak/me", h.GetMyStreak)
	userGamification.Get("/certificates/me", h.ListMyCertificates)
}
