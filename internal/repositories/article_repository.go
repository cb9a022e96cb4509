package repositories

import (
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

// ArticleRepository defines the interface for article data operations
type ArticleRepository interface {
	CreateArticle(article *models.Article) error
	GetArticleByID(id uint) (*models.Article, error)
	GetArticleBySlug(slug string) (*models.Article, error)
	GetTrashedArticleByID(id uint) (*models.Article, error)
	ListByUser(userID uint, page, limit int) ([]models.Article, int64, error)
	ListTrashedByUser(userID uint, page, limit int) ([]models.Article, int64, error)
	UpdateArticle(article *models.Article) error
	TrashArticle(id uint) error
	RestoreArticle(id uint) error
	UniqueSlug(title string) (string, error)
}

// PostgresArticleRepository implements ArticleRepository for PostgreSQL
type PostgresArticleRepository struct {
	db *gorm.DB
}

// NewPostgresArticleRepository creates a new PostgresArticleRepository
func NewPostgresArticleRepository(db *gorm.DB) *PostgresArticleRepository {
	return &PostgresArticleRepository{db: db}
}

func (r *PostgresArticleRepository) CreateArticle(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *PostgresArticleRepository) GetArticleByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.First(&article, id).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

func (r *PostgresArticleRepository) GetArticleBySlug(slug string) (*models.Article, error) {
	var article models.Article
	if err := r.db.Where("slug = ?", slug).First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// GetTrashedArticleByID looks up an article among soft-deleted rows only.
func (r *PostgresArticleRepository) GetTrashedArticleByID(id uint) (*models.Article, error) {
	var article models.Article
	if err := r.db.Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&article).Error; err != nil {
		return nil, err
	}
	return &article, nil
}

// ListByUser returns a user's live articles, newest first.
func (r *PostgresArticleRepository) ListByUser(userID uint, page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	if err := r.db.Model(&models.Article{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

// ListTrashedByUser returns only the user's soft-deleted articles.
func (r *PostgresArticleRepository) ListTrashedByUser(userID uint, page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	trashed := r.db.Unscoped().Model(&models.Article{}).
		Where("user_id = ? AND deleted_at IS NOT NULL", userID)
	if err := trashed.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := r.db.Unscoped().
		Where("user_id = ? AND deleted_at IS NOT NULL", userID).
		Order("deleted_at DESC").
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

func (r *PostgresArticleRepository) UpdateArticle(article *models.Article) error {
	return r.db.Save(article).Error
}

// TrashArticle soft-deletes an article; the row stays for the trash view.
func (r *PostgresArticleRepository) TrashArticle(id uint) error {
	res := r.db.Delete(&models.Article{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// RestoreArticle clears the soft-delete marker.
func (r *PostgresArticleRepository) RestoreArticle(id uint) error {
	res := r.db.Unscoped().Model(&models.Article{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UniqueSlug derives a URL slug from a title, suffixing a short random
// fragment when the slug is already taken (including by trashed rows).
func (r *PostgresArticleRepository) UniqueSlug(title string) (string, error) {
	slug := Slugify(title)
	var count int64
	if err := r.db.Unscoped().Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return slug, nil
	}
	return slug + "-" + uuid.NewString()[:8], nil
}

// Slugify lowercases a title and collapses everything that is not a
// letter or digit into single dashes.
func Slugify(title string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastDash = false
		} else if !lastDash {
			b.WriteByte('-')
			lastDash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
