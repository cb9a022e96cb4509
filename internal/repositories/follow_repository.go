package repositories

import (
	"errors"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow edge operations
type FollowRepository interface {
	Toggle(followerID, followingID uint) (bool, error)
	IsFollowing(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint, page, limit int) ([]models.User, int64, error)
	GetFollowing(userID uint, page, limit int) ([]models.User, int64, error)
	GetFollowersCount(userID uint) (int64, error)
	GetFollowingCount(userID uint) (int64, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// Toggle flips the follow edge follower -> following and reports the
// resulting state. Delete and insert each run as a single atomic
// statement; the unique index on the ordered pair arbitrates concurrent
// toggles. A raced duplicate insert surfaces as gorm.ErrDuplicatedKey
// and is read as "already following" rather than failing the request.
// No wrapping transaction: on Postgres a failed insert would abort it
// and the commit would fail even with the error handled.
func (r *PostgresFollowRepository) Toggle(followerID, followingID uint) (bool, error) {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	if err := r.db.Create(&models.Follow{FollowerID: followerID, FollowingID: followingID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresFollowRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Follow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollowers returns the users following userID, newest edge first.
func (r *PostgresFollowRepository) GetFollowers(userID uint, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}

// GetFollowing returns the users userID follows, newest edge first.
func (r *PostgresFollowRepository) GetFollowing(userID uint, page, limit int) ([]models.User, int64, error) {
	var users []models.User
	var total int64

	if err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", userID).
		Order("follows.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (r *PostgresFollowRepository) GetFollowersCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("following_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *PostgresFollowRepository) GetFollowingCount(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Count(&count).Error
	return count, err
}
