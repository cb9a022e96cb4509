package repositories

import (
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(notification *models.Notification) error
	ListVisible(user *models.User, page, limit int) ([]models.Notification, int64, error)
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(notification *models.Notification) error {
	return r.db.Create(notification).Error
}

// ListVisible returns the notifications a user may see, newest first:
// ones addressed to them plus broadcasts created after their account.
// The created_at guard keeps old announcements away from new accounts.
func (r *postgresNotificationRepository) ListVisible(user *models.User, page, limit int) ([]models.Notification, int64, error) {
	var notifications []models.Notification
	var total int64

	visible := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? OR (to_all = ? AND created_at > ?)", user.ID, true, user.CreatedAt)
	if err := visible.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.
		Where("recipient_id = ? OR (to_all = ? AND created_at > ?)", user.ID, true, user.CreatedAt).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error

	return notifications, total, err
}
