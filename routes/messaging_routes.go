package routes

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func MessagingRoutes(app *fiber.App, h *handlers.MessagingHandler) {
	messaging := app.Group("/api/v1/messaging", middleware.Protected())
	messaging.Get("/conversations", h.GetUserConversations)
	messaging.Post("/conversations", h.CreateOrGetConversation)
	messaging.Get("/conversations/:conversationId/messages", h.GetConversationMessages)

	app.Get("/ws", websocket.New(h.ServeWs))
}
