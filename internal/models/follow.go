package models

import "time"

// Follow is a directed edge from one user to another. The composite
// unique index keeps at most one edge per ordered pair, which is what
// makes the toggle safe under concurrent double-clicks.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	CreatedAt   time.Time `json:"created_at"`
}
