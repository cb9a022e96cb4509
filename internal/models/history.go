package models

import "time"

// History is one row of a user's append-only read log, written when
// the user opens an article. Never updated or deleted by the app.
type History struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;not null"`
	ArticleID uint      `json:"article_id" gorm:"index;not null"`
	Article   *Article  `json:"article,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
