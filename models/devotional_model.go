package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Devotional struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AuthorID uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Verse    string    `gorm:"size:255;not null" json:"verse"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	ImageURL *string   `gorm:"size:255" json:"image_url"`

	Author User `gorm:"foreignkey:AuthorID" json:"author,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Devotional) BeforeCreate(tx *gorm.DB) error {
	ensureID(&d.ID)
	return nil
}
