package repositories

import (
	"testing"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB opens an isolated in-memory database with the full schema.
// A single connection keeps every query on the same :memory: instance.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Article{},
		&models.Follow{},
		&models.Collect{},
		&models.History{},
		&models.Notification{},
	); err != nil {
		t.Fatalf("failed to migrate test schema: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, nickname, email string) *models.User {
	t.Helper()
	user := &models.User{Nickname: nickname, Email: email, Role: models.RoleMember}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", nickname, err)
	}
	return user
}
