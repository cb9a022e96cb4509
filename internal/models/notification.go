package models

import "time"

// Notification types produced by the application and by external
// article/comment event producers.
const (
	NotificationTypeFollow  = "follow"
	NotificationTypeComment = "comment"
	NotificationTypeArticle = "article"
	NotificationTypeSystem  = "system"
)

// Notification is addressed either to a single recipient or broadcast
// to everyone (ToAll). A broadcast is visible to a user only if it was
// created after that user's account, so new accounts never see old
// announcements.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Type        string    `json:"type" gorm:"size:30;index"`
	ActorID     uint      `json:"actor_id" gorm:"index"`
	RecipientID uint      `json:"recipient_id" gorm:"index"` // zero when ToAll
	TargetID    string    `json:"target_id"`                 // article ID, comment ID, etc.
	TargetType  string    `json:"target_type" gorm:"size:20"`
	Message     string    `json:"message"`
	ToAll       bool      `json:"to_all" gorm:"default:false;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
}
