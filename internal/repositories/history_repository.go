package repositories

import (
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// HistoryRepository defines the interface for the read log
type HistoryRepository interface {
	Record(userID, articleID uint) error
	ListByUser(userID uint, page, limit int) ([]models.History, int64, error)
}

// PostgresHistoryRepository implements HistoryRepository
type PostgresHistoryRepository struct {
	db *gorm.DB
}

func NewPostgresHistoryRepository(db *gorm.DB) *PostgresHistoryRepository {
	return &PostgresHistoryRepository{db: db}
}

// Record appends one read event. The log is append-only.
func (r *PostgresHistoryRepository) Record(userID, articleID uint) error {
	return r.db.Create(&models.History{UserID: userID, ArticleID: articleID}).Error
}

// ListByUser returns the user's read log, newest first, with the
// article loaded for display.
func (r *PostgresHistoryRepository) ListByUser(userID uint, page, limit int) ([]models.History, int64, error) {
	var histories []models.History
	var total int64

	if err := r.db.Model(&models.History{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Preload("Article").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&histories).Error
	return histories, total, err
}
