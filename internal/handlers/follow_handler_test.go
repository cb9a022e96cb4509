package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"gorm.io/gorm"
)

func newFollowHandler(db *gorm.DB) *FollowHandler {
	return NewFollowHandler(
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresNotificationRepository(db),
	)
}

func followingFromResponse(t *testing.T, body []byte) bool {
	t.Helper()
	var resp struct {
		Data struct {
			Following bool `json:"following"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.Data.Following
}

func TestToggleFollowEndpoint(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newFollowHandler(db)
	alice := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")
	bob := createUserWithPassword(t, db, "bob", "bob@example.com", "secret2")

	c, rec := jsonRequest(e, http.MethodPost, "", bob.ID, alice.ID)
	if err := h.ToggleFollow(c); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !followingFromResponse(t, rec.Body.Bytes()) {
		t.Fatal("first toggle should report following=true")
	}

	// The followee is told and their unread counter bumps.
	var target models.User
	if err := db.First(&target, bob.ID).Error; err != nil {
		t.Fatalf("failed to reload target: %v", err)
	}
	if target.NoticeCount != 1 {
		t.Fatalf("expected notice_count 1 after follow, got %d", target.NoticeCount)
	}
	var notifCount int64
	if err := db.Model(&models.Notification{}).
		Where("recipient_id = ? AND type = ?", bob.ID, models.NotificationTypeFollow).
		Count(&notifCount).Error; err != nil {
		t.Fatalf("failed to count notifications: %v", err)
	}
	if notifCount != 1 {
		t.Fatalf("expected 1 follow notification, got %d", notifCount)
	}

	c, rec = jsonRequest(e, http.MethodPost, "", bob.ID, alice.ID)
	if err := h.ToggleFollow(c); err != nil {
		t.Fatalf("second toggle failed: %v", err)
	}
	if followingFromResponse(t, rec.Body.Bytes()) {
		t.Fatal("second toggle should report following=false")
	}
}

func TestToggleFollowSelf(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newFollowHandler(db)
	alice := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")

	c, _ := jsonRequest(e, http.MethodPost, "", alice.ID, alice.ID)
	err := h.ToggleFollow(c)
	if err == nil {
		t.Fatal("expected an error following yourself")
	}
	if code := httpStatus(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestToggleFollowAnonymous(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newFollowHandler(db)
	alice := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")

	c, _ := jsonRequest(e, http.MethodPost, "", alice.ID, 0)
	err := h.ToggleFollow(c)
	if err == nil {
		t.Fatal("expected an error without an identity")
	}
	if code := httpStatus(t, err); code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
}

func TestToggleFollowMissingTarget(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newFollowHandler(db)
	alice := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")

	c, _ := jsonRequest(e, http.MethodPost, "", 999, alice.ID)
	err := h.ToggleFollow(c)
	if err == nil {
		t.Fatal("expected an error for a missing target")
	}
	if code := httpStatus(t, err); code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}
}
