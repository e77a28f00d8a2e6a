package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func UploadRoutes(app *fiber.App, h *handlers.UploadHandler) {
	uploads := app.Group("/api/v1/uploads", middleware.Protected())
	uploads.Get("/signature", h.GenerateUploadSignature)
	uploads.Post("/avatar", h.UploadAvatar)
}
