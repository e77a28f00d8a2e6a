package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/journeyapp/journey_backend/handlers"
	"github.com/journeyapp/journey_backend/middleware"
)

func CommunityRoutes(app *fiber.App, h *handlers.CommunityHandler) {
	posts := app.Group("/api/v1/posts", middleware.Protected())
	posts.Post("", h.CreatePost)
	posts.Get("", h.ListPosts)
	posts.Get("/:postId", h.GetPost)
	posts.Delete("/:postId", h.DeletePost)
	posts.Post("/:postId/comments", h.CreateComment)
	posts.Post("/:postId/like", h.LikePost)
	posts.Delete("/:postId/like", h.UnlikePost)
}
