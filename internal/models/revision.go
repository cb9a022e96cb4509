package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Revision is an archived snapshot of an article's content, written to
// MongoDB just before each update so edits are never lost.
type Revision struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ArticleID uint               `json:"article_id" bson:"article_id"`
	EditorID  uint               `json:"editor_id" bson:"editor_id"`
	Title     string             `json:"title" bson:"title"`
	Excerpt   string             `json:"excerpt,omitempty" bson:"excerpt,omitempty"`
	Body      string             `json:"body" bson:"body"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
