package models

import (
	"time"

	"gorm.io/gorm"
)

// Article is a published piece owned by exactly one user. Deleting the
// owner cascades to their articles; deleting an article only marks it
// trashed (gorm soft delete) so it can be restored from the trash view.
type Article struct {
	ID            uint   `json:"id" gorm:"primaryKey"`
	UserID        uint   `json:"user_id" gorm:"index;not null"`
	User          *User  `json:"user,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	Title         string `json:"title" gorm:"size:255;not null"`
	Slug          string `json:"slug" gorm:"size:255;uniqueIndex"`
	Thumb         string `json:"thumb" gorm:"size:255"`
	Excerpt       string `json:"excerpt" gorm:"type:text"`
	Body          string `json:"body" gorm:"type:text"`
	IsActive      bool   `json:"is_active" gorm:"default:false"`
	CommentStatus bool   `json:"comment_status" gorm:"default:false"`
	CommentCount  uint   `json:"comment_count" gorm:"default:0"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// OwnerID makes Article a policy resource.
func (a *Article) OwnerID() uint { return a.UserID }

type CreateArticleRequest struct {
	Title         string `json:"title" validate:"required,min=1,max=255"`
	Thumb         string `json:"thumb,omitempty" validate:"omitempty,url"`
	Excerpt       string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Body          string `json:"body" validate:"required"`
	IsActive      bool   `json:"is_active"`
	CommentStatus bool   `json:"comment_status"`
}

type UpdateArticleRequest struct {
	Title         string `json:"title,omitempty" validate:"omitempty,min=1,max=255"`
	Thumb         string `json:"thumb,omitempty" validate:"omitempty,url"`
	Excerpt       string `json:"excerpt,omitempty" validate:"omitempty,max=500"`
	Body          string `json:"body,omitempty"`
	IsActive      *bool  `json:"is_active,omitempty"`
	CommentStatus *bool  `json:"comment_status,omitempty"`
}
