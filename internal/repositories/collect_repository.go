package repositories

import (
	"errors"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// CollectRepository defines the interface for article bookmark operations
type CollectRepository interface {
	Toggle(userID, articleID uint) (bool, error)
	IsCollected(userID, articleID uint) (bool, error)
	ListArticles(userID uint, page, limit int) ([]models.Article, int64, error)
}

// PostgresCollectRepository implements CollectRepository
type PostgresCollectRepository struct {
	db *gorm.DB
}

func NewPostgresCollectRepository(db *gorm.DB) *PostgresCollectRepository {
	return &PostgresCollectRepository{db: db}
}

// Toggle flips the bookmark for (user, article), same check-and-flip
// shape as the follow toggle: single-statement delete and insert, with
// the unique index arbitrating races and a duplicate insert read as
// "already collected".
func (r *PostgresCollectRepository) Toggle(userID, articleID uint) (bool, error) {
	res := r.db.Where("user_id = ? AND article_id = ?", userID, articleID).
		Delete(&models.Collect{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	if err := r.db.Create(&models.Collect{UserID: userID, ArticleID: articleID}).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return true, nil
		}
		return false, err
	}
	return true, nil
}

func (r *PostgresCollectRepository) IsCollected(userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Collect{}).
		Where("user_id = ? AND article_id = ?", userID, articleID).
		Count(&count).Error
	return count > 0, err
}

// ListArticles returns the articles a user has collected, most recently
// collected first.
func (r *PostgresCollectRepository) ListArticles(userID uint, page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	if err := r.db.Model(&models.Collect{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Model(&models.Article{}).
		Joins("JOIN collects ON collects.article_id = articles.id").
		Where("collects.user_id = ?", userID).
		Order("collects.created_at DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}
