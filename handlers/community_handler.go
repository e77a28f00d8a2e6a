package handlers

import (
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/journeyapp/journey_backend/models"
	"github.com/journeyapp/journey_backend/services"
)

// sanitizer strips markup that could XSS other readers of community content.
var sanitizer = bluemonday.UGCPolicy()

type CommunityHandler struct {
	DB       *gorm.DB
	Activity *services.ActivityService
	Points   *services.PointsService
	Notifier *services.NotificationService
}

func NewCommunityHandler(db *gorm.DB, activity *services.ActivityService, points *services.PointsService, notifier *services.NotificationService) *CommunityHandler {
	return &CommunityHandler{DB: db, Activity: activity, Points: points, Notifier: notifier}
}

type CreatePostRequest struct {
	Title    string  `json:"title" validate:"required,max=255"`
	Content  string  `json:"content" validate:"required"`
	Kind     string  `json:"kind" validate:"omitempty,oneof=post prayer testimony question"`
	ImageURL *string `json:"image_url" validate:"omitempty,url"`
}

func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreatePostRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	kind := req.Kind
	if kind == "" {
		kind = "post"
	}

	post := models.CommunityPost{
		AuthorID: userID,
		Title:    sanitizer.Sanitize(req.Title),
		Content:  sanitizer.Sanitize(req.Content),
		Kind:     kind,
		ImageURL: req.ImageURL,
	}
	if err := h.DB.Create(&post).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create post"})
	}

	activityKind := services.ActivityPostCreated
	if kind == "prayer" {
		activityKind = services.ActivityPrayerShared
	}
	if _, err := h.Activity.Track(userID, activityKind, services.TrackOptions{Reference: post.ID.String()}); err != nil {
		log.Printf("🔥 Failed to track post activity for user %s: %v", userID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

func (h *CommunityHandler) ListPosts(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	pageSize, _ := strconv.Atoi(c.Query("page_size", "20"))
	offset := (page - 1) * pageSize

	query := h.DB.Preload("Author").Order("created_at desc").Limit(pageSize).Offset(offset)
	if kind := c.Query("kind"); kind != "" {
		query = query.Where("kind = ?", kind)
	}

	var posts []models.CommunityPost
	if err := query.Find(&posts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch posts"})
	}

	return c.JSON(posts)
}

func (h *CommunityHandler) GetPost(c *fiber.Ctx) error {
	postID := c.Params("postId")

	var post models.CommunityPost
	if err := h.DB.Preload("Author").Preload("Comments.Author").First(&post, "id = ?", postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	return c.JSON(post)
}

func (h *CommunityHandler) DeletePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	postID := c.Params("postId")

	result := h.DB.Delete(&models.CommunityPost{}, "id = ? AND author_id = ?", postID, userID)
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete post"})
	}
	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}

type CreateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

func (h *CommunityHandler) CreateComment(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	postID := c.Params("postId")

	var post models.CommunityPost
	if err := h.DB.First(&post, "id = ?", postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	var req CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	comment := models.PostComment{
		CommunityPostID: post.ID,
		AuthorID:        userID,
		Content:         sanitizer.Sanitize(req.Content),
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}
		return tx.Model(&post).UpdateColumn("comment_count", gorm.Expr("comment_count + 1")).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create comment"})
	}

	if _, err := h.Activity.Track(userID, services.ActivityCommentCreated, services.TrackOptions{Reference: post.ID.String()}); err != nil {
		log.Printf("🔥 Failed to track comment activity for user %s: %v", userID, err)
	}

	// Commenting credits the post author; nothing is deducted from the
	// commenter.
	if post.AuthorID != userID {
		if _, err := h.Points.AddPoints(post.AuthorID, 2, "post_commented", post.ID.String()); err != nil {
			log.Printf("🔥 Failed to credit post author %s: %v", post.AuthorID, err)
		}
		go h.Notifier.Notify(post.AuthorID, "post_commented", "New comment on your post",
			"Someone commented on your post.", map[string]interface{}{"post_id": post.ID.String()})
	}

	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommunityHandler) LikePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	postID := c.Params("postId")

	var post models.CommunityPost
	if err := h.DB.First(&post, "id = ?", postID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
	}

	liked := false
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		like := models.PostLike{CommunityPostID: post.ID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		liked = true
		return tx.Model(&post).UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to like post"})
	}
	if !liked {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Already liked"})
	}

	if post.AuthorID != userID {
		if _, err := h.Points.AddPoints(post.AuthorID, 2, "post_liked", post.ID.String()); err != nil {
			log.Printf("🔥 Failed to credit post author %s: %v", post.AuthorID, err)
		}
		go h.Notifier.Notify(post.AuthorID, "post_liked", "Your post was liked",
			"Someone liked your post.", map[string]interface{}{"post_id": post.ID.String()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"liked": true})
}

func (h *CommunityHandler) UnlikePost(c *fiber.Ctx) error {
	userID, err := currentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	postID := c.Params("postId")

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.PostLike{}, "community_post_id = ? AND user_id = ?", postID, userID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&models.CommunityPost{}).
			Where("id = ?", postID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Like not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to unlike post"})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
