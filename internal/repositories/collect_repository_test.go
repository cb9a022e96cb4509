package repositories

import (
	"testing"
	"time"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

func TestToggleCollectRoundTrip(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresCollectRepository(db)
	author := createTestUser(t, db, "author", "author@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")
	article := createTestArticle(t, db, author.ID, "Piece", "piece")

	collected, err := repo.Toggle(reader.ID, article.ID)
	if err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if !collected {
		t.Fatal("first toggle should bookmark")
	}

	is, err := repo.IsCollected(reader.ID, article.ID)
	if err != nil {
		t.Fatalf("IsCollected failed: %v", err)
	}
	if !is {
		t.Fatal("bookmark not found after toggle")
	}

	collected, err = repo.Toggle(reader.ID, article.ID)
	if err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if collected {
		t.Fatal("second toggle should remove the bookmark")
	}

	var count int64
	if err := db.Model(&models.Collect{}).Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no collect rows, got %d", count)
	}
}

func TestToggleCollectRacedInsert(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresCollectRepository(db)
	author := createTestUser(t, db, "author", "author@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")
	article := createTestArticle(t, db, author.ID, "Piece", "piece")

	// Same interleaving as the follow toggle: a concurrent bookmark
	// beats this one to the insert and the unique index rejects ours.
	raced := false
	err := db.Callback().Create().Before("gorm:create").Register("concurrent_collect", func(tx *gorm.DB) {
		if _, ok := tx.Statement.Dest.(*models.Collect); !ok || raced {
			return
		}
		raced = true
		if err := db.Exec(
			"INSERT INTO collects (user_id, article_id, created_at) VALUES (?, ?, ?)",
			reader.ID, article.ID, time.Now()).Error; err != nil {
			t.Errorf("concurrent insert failed: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("failed to register callback: %v", err)
	}

	collected, err := repo.Toggle(reader.ID, article.ID)
	if err != nil {
		t.Fatalf("toggle lost the race but should not fail: %v", err)
	}
	if !collected {
		t.Fatal("raced toggle should still report collected")
	}
	var count int64
	if err := db.Model(&models.Collect{}).
		Where("user_id = ? AND article_id = ?", reader.ID, article.ID).
		Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 bookmark after the race, got %d", count)
	}
}

func TestCollectListArticles(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresCollectRepository(db)
	author := createTestUser(t, db, "author", "author@example.com")
	reader := createTestUser(t, db, "reader", "reader@example.com")

	first := createTestArticle(t, db, author.ID, "First", "first")
	second := createTestArticle(t, db, author.ID, "Second", "second")

	if _, err := repo.Toggle(reader.ID, first.ID); err != nil {
		t.Fatalf("toggle first failed: %v", err)
	}
	if _, err := repo.Toggle(reader.ID, second.ID); err != nil {
		t.Fatalf("toggle second failed: %v", err)
	}

	articles, total, err := repo.ListArticles(reader.ID, 1, 10)
	if err != nil {
		t.Fatalf("ListArticles failed: %v", err)
	}
	if total != 2 || len(articles) != 2 {
		t.Fatalf("expected 2 collected articles, total=%d len=%d", total, len(articles))
	}
}
