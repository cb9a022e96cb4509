package models

import "time"

// Collect is a bookmark of an article by a user. One row per
// (user, article) pair.
type Collect struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_article_collect"`
	ArticleID uint      `json:"article_id" gorm:"index;uniqueIndex:idx_user_article_collect"`
	CreatedAt time.Time `json:"created_at"`
}
