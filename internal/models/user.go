package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Role values stored on User.Role. Editors hold the article.manage
// capability and may act on articles they do not own.
const (
	RoleMember = "member"
	RoleEditor = "editor"
)

type User struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Nickname    string `json:"nickname" gorm:"size:50;index"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Ensure email is unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"index"` // Link to Firebase User UID
	Role        string `json:"role" gorm:"size:20;default:'member'"`

	// Profile fields
	Website     string `json:"website" gorm:"size:255"`
	Weibo       string `json:"weibo" gorm:"size:100"`
	QQ          string `json:"qq" gorm:"size:30"`
	Github      string `json:"github" gorm:"size:100"`
	Description string `json:"description" gorm:"type:text"`

	// Unread notification counter. Incremented by notification producers,
	// consumed (snapshot-then-decrement) when the owner views the list.
	NoticeCount uint `json:"notice_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OwnerID makes User a policy resource: a user resource is owned by itself.
func (u *User) OwnerID() uint { return u.ID }

// UserCompact is the trimmed representation embedded in listings
// (follows, fans, notification actors).
type UserCompact struct {
	ID          uint   `json:"id"`
	Nickname    string `json:"nickname"`
	Description string `json:"description,omitempty"`
}

func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:          u.ID,
		Nickname:    u.Nickname,
		Description: u.Description,
	}
}

type RegisterRequest struct {
	Nickname string `json:"nickname" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest uses pointer fields so an absent key leaves the
// stored value alone while a submitted empty string clears it.
type UpdateProfileRequest struct {
	Nickname    *string `json:"nickname,omitempty" validate:"omitempty,min=2,max=50"`
	Website     *string `json:"website,omitempty" validate:"omitempty,url,max=255"`
	Weibo       *string `json:"weibo,omitempty" validate:"omitempty,max=100"`
	QQ          *string `json:"qq,omitempty" validate:"omitempty,max=30"`
	Github      *string `json:"github,omitempty" validate:"omitempty,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
}

// UpdatePasswordRequest carries the password-change form. The current
// password is verified against the stored hash, not just required.
type UpdatePasswordRequest struct {
	Password                string `json:"password" validate:"required"`
	PasswordNew             string `json:"password_new" validate:"required,min=6"`
	PasswordNewConfirmation string `json:"password_new_confirmation" validate:"required,eqfield=PasswordNew"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
