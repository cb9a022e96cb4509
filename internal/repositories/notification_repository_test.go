package repositories

import (
	"testing"
	"time"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"gorm.io/gorm"
)

func setCreatedAt(t *testing.T, db *gorm.DB, user *models.User, at time.Time) {
	t.Helper()
	if err := db.Model(&models.User{}).Where("id = ?", user.ID).
		UpdateColumn("created_at", at).Error; err != nil {
		t.Fatalf("failed to set created_at: %v", err)
	}
	user.CreatedAt = at
}

func TestBroadcastVisibility(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresNotificationRepository(db)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	early := createTestUser(t, db, "early", "early@example.com")
	setCreatedAt(t, db, early, base)
	late := createTestUser(t, db, "late", "late@example.com")
	setCreatedAt(t, db, late, base.Add(2*time.Hour))

	broadcast := &models.Notification{
		Type:      models.NotificationTypeSystem,
		Message:   "maintenance window tonight",
		ToAll:     true,
		CreatedAt: base.Add(time.Hour),
	}
	if err := repo.CreateNotification(broadcast); err != nil {
		t.Fatalf("failed to create broadcast: %v", err)
	}

	// Created before the broadcast: sees it.
	visible, total, err := repo.ListVisible(early, 1, 10)
	if err != nil {
		t.Fatalf("ListVisible(early) failed: %v", err)
	}
	if total != 1 || len(visible) != 1 {
		t.Fatalf("early user should see the broadcast, total=%d len=%d", total, len(visible))
	}

	// Created after the broadcast: never sees it.
	visible, total, err = repo.ListVisible(late, 1, 10)
	if err != nil {
		t.Fatalf("ListVisible(late) failed: %v", err)
	}
	if total != 0 || len(visible) != 0 {
		t.Fatalf("late user should not see the broadcast, total=%d len=%d", total, len(visible))
	}
}

func TestDirectAndBroadcastUnion(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresNotificationRepository(db)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	user := createTestUser(t, db, "reader", "reader@example.com")
	setCreatedAt(t, db, user, base)
	other := createTestUser(t, db, "other", "other@example.com")
	setCreatedAt(t, db, other, base)

	direct := &models.Notification{
		Type:        models.NotificationTypeFollow,
		ActorID:     other.ID,
		RecipientID: user.ID,
		Message:     "other started following you",
		CreatedAt:   base.Add(30 * time.Minute),
	}
	broadcast := &models.Notification{
		Type:      models.NotificationTypeSystem,
		Message:   "welcome release notes",
		ToAll:     true,
		CreatedAt: base.Add(time.Hour),
	}
	foreign := &models.Notification{
		Type:        models.NotificationTypeFollow,
		RecipientID: other.ID,
		Message:     "not for reader",
		CreatedAt:   base.Add(2 * time.Hour),
	}
	for _, n := range []*models.Notification{direct, broadcast, foreign} {
		if err := repo.CreateNotification(n); err != nil {
			t.Fatalf("failed to create notification: %v", err)
		}
	}

	visible, total, err := repo.ListVisible(user, 1, 10)
	if err != nil {
		t.Fatalf("ListVisible failed: %v", err)
	}
	if total != 2 || len(visible) != 2 {
		t.Fatalf("expected direct+broadcast, total=%d len=%d", total, len(visible))
	}
	// Newest first.
	if !visible[0].ToAll || visible[1].RecipientID != user.ID {
		t.Fatalf("expected broadcast first then direct, got %+v", visible)
	}
}

func TestListVisiblePagination(t *testing.T) {
	db := testDB(t)
	repo := NewPostgresNotificationRepository(db)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	user := createTestUser(t, db, "reader", "reader@example.com")
	setCreatedAt(t, db, user, base)

	for i := 0; i < 15; i++ {
		n := &models.Notification{
			Type:        models.NotificationTypeComment,
			RecipientID: user.ID,
			Message:     "comment",
			CreatedAt:   base.Add(time.Duration(i+1) * time.Minute),
		}
		if err := repo.CreateNotification(n); err != nil {
			t.Fatalf("failed to create notification %d: %v", i, err)
		}
	}

	page1, total, err := repo.ListVisible(user, 1, 10)
	if err != nil {
		t.Fatalf("page 1 failed: %v", err)
	}
	if total != 15 || len(page1) != 10 {
		t.Fatalf("page 1: total=%d len=%d", total, len(page1))
	}

	page2, _, err := repo.ListVisible(user, 2, 10)
	if err != nil {
		t.Fatalf("page 2 failed: %v", err)
	}
	if len(page2) != 5 {
		t.Fatalf("page 2: len=%d", len(page2))
	}
	// Page 2 items are strictly older than page 1's last item.
	if !page2[0].CreatedAt.Before(page1[len(page1)-1].CreatedAt) {
		t.Fatal("pagination order broken across pages")
	}
}
