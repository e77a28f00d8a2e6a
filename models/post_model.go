package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CommunityPost struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	Kind     string    `gorm:"size:20;not null;default:'post'" json:"kind"`
	ImageURL *string   `gorm:"size:255" json:"image_url"`

	LikeCount    int `gorm:"not null;default:0" json:"like_count"`
	CommentCount int `gorm:"not null;default:0" json:"comment_count"`

	Author   User          `gorm:"foreignkey:AuthorID" json:"author,omitempty"`
	Comments []PostComment `json:"comments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *CommunityPost) BeforeCreate(tx *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}

type PostComment struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CommunityPostID uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	AuthorID        uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`

	Author User `gorm:"foreignkey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (c *PostComment) BeforeCreate(tx *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}

// PostLike is unique per (post, user) so a post can be liked at most once.
type PostLike struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CommunityPostID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like" json:"post_id"`
	UserID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_post_like" json:"user_id"`
	CreatedAt       time.Time `json:"created_at"`
}

func (l *PostLike) BeforeCreate(tx *gorm.DB) error {
	ensureID(&l.ID)
	return nil
}
