package repositories

import (
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByFirebaseUID(firebaseUID string) (*models.User, error)
	GetUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	IncrementNoticeCount(userID uint) error
	ConsumeNoticeCount(userID uint) (uint, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// CreateUser creates a new user in PostgreSQL
func (r *PostgresUserRepository) CreateUser(user *models.User) error {
	return r.db.Create(user).Error
}

// GetUserByID retrieves a user by ID from PostgreSQL
func (r *PostgresUserRepository) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email from PostgreSQL
func (r *PostgresUserRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByFirebaseUID retrieves a user by Firebase UID from PostgreSQL
func (r *PostgresUserRepository) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("firebase_uid = ?", firebaseUID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsers retrieves all users from PostgreSQL, newest first
func (r *PostgresUserRepository) GetUsers() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUser updates an existing user in PostgreSQL
func (r *PostgresUserRepository) UpdateUser(user *models.User) error {
	return r.db.Save(user).Error
}

// IncrementNoticeCount bumps the unread notification counter by one.
func (r *PostgresUserRepository) IncrementNoticeCount(userID uint) error {
	return r.db.Model(&models.User{}).Where("id = ?", userID).
		UpdateColumn("notice_count", gorm.Expr("notice_count + 1")).Error
}

// ConsumeNoticeCount snapshots the unread counter and decrements it by
// that snapshot in a single conditional statement. Decrementing instead
// of resetting keeps increments that land between the read and the
// write; the guard on notice_count >= snapshot keeps the column from
// going negative when two views race, in which case we re-read.
func (r *PostgresUserRepository) ConsumeNoticeCount(userID uint) (uint, error) {
	for attempt := 0; attempt < 3; attempt++ {
		var user models.User
		if err := r.db.Select("id", "notice_count").First(&user, userID).Error; err != nil {
			return 0, err
		}
		if user.NoticeCount == 0 {
			return 0, nil
		}
		res := r.db.Model(&models.User{}).
			Where("id = ? AND notice_count >= ?", userID, user.NoticeCount).
			UpdateColumn("notice_count", gorm.Expr("notice_count - ?", user.NoticeCount))
		if res.Error != nil {
			return 0, res.Error
		}
		if res.RowsAffected > 0 {
			return user.NoticeCount, nil
		}
	}
	return 0, nil
}
