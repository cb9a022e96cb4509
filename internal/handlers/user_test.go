package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lumen-pub/inkwell/backend/internal/middleware"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func createUserWithPassword(t *testing.T, db *gorm.DB, nickname, email, password string) *models.User {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Nickname: nickname,
		Email:    email,
		Password: string(hashed),
		Role:     models.RoleMember,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", nickname, err)
	}
	return user
}

func newUserHandler(db *gorm.DB) *UserHandler {
	return NewUserHandler(
		repositories.NewPostgresUserRepository(db),
		repositories.NewPostgresArticleRepository(db),
		repositories.NewPostgresCollectRepository(db),
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresHistoryRepository(db),
	)
}

func TestUserRouteVisibility(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	user := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")

	public := e.Group("/api/v1")
	protected := e.Group("/api/v1")
	protected.Use(middleware.JWTAuthMiddleware())
	h.RegisterUserRoutes(public, protected)

	// Profile reads need no token.
	publicPaths := []string{
		"/api/v1/users",
		fmt.Sprintf("/api/v1/users/%d", user.ID),
		fmt.Sprintf("/api/v1/users/%d/articles", user.ID),
		fmt.Sprintf("/api/v1/users/%d/collects", user.ID),
		fmt.Sprintf("/api/v1/users/%d/follows", user.ID),
		fmt.Sprintf("/api/v1/users/%d/fans", user.ID),
	}
	for _, path := range publicPaths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s anonymous = %d, want 200", path, rec.Code)
		}
	}

	// The trash view and mutations are rejected without a token.
	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/api/v1/users/%d/trash", user.ID), nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("GET trash anonymous = %d, want 401", rec.Code)
	}
	req = httptest.NewRequest(http.MethodPut, fmt.Sprintf("/api/v1/users/%d", user.ID), nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("PUT profile anonymous = %d, want 401", rec.Code)
	}
}

func TestUpdatePassword(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	user := createUserWithPassword(t, db, "alice", "alice@example.com", "oldsecret")

	body := `{"password":"oldsecret","password_new":"newsecret","password_new_confirmation":"newsecret"}`
	c, rec := jsonRequest(e, http.MethodPut, body, user.ID, user.ID)
	if err := h.UpdatePassword(c); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("newsecret")); err != nil {
		t.Fatal("new password does not verify against stored hash")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("oldsecret")); err == nil {
		t.Fatal("old password still verifies after the change")
	}
}

func TestUpdatePasswordWrongCurrent(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	user := createUserWithPassword(t, db, "alice", "alice@example.com", "oldsecret")

	body := `{"password":"not-the-password","password_new":"newsecret","password_new_confirmation":"newsecret"}`
	c, _ := jsonRequest(e, http.MethodPut, body, user.ID, user.ID)
	err := h.UpdatePassword(c)
	if err == nil {
		t.Fatal("expected an error for a wrong current password")
	}
	if code := httpStatus(t, err); code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", code)
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("oldsecret")); err != nil {
		t.Fatal("stored hash changed despite the failed attempt")
	}
}

func TestUpdatePasswordValidation(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	user := createUserWithPassword(t, db, "alice", "alice@example.com", "oldsecret")

	cases := []struct {
		name string
		body string
	}{
		{"new password too short", `{"password":"oldsecret","password_new":"tiny","password_new_confirmation":"tiny"}`},
		{"confirmation mismatch", `{"password":"oldsecret","password_new":"newsecret","password_new_confirmation":"different"}`},
		{"missing current password", `{"password_new":"newsecret","password_new_confirmation":"newsecret"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := jsonRequest(e, http.MethodPut, tc.body, user.ID, user.ID)
			err := h.UpdatePassword(c)
			if err == nil {
				t.Fatal("expected a validation error")
			}
			if code := httpStatus(t, err); code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d", code)
			}
		})
	}
}

func TestUpdatePasswordForeignUserForbidden(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	alice := createUserWithPassword(t, db, "alice", "alice@example.com", "oldsecret")
	bob := createUserWithPassword(t, db, "bob", "bob@example.com", "bobsecret")

	body := `{"password":"oldsecret","password_new":"newsecret","password_new_confirmation":"newsecret"}`
	c, _ := jsonRequest(e, http.MethodPut, body, alice.ID, bob.ID)
	err := h.UpdatePassword(c)
	if err == nil {
		t.Fatal("expected an error acting on another user's password")
	}
	if code := httpStatus(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}
}

func TestUpdateProfile(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	user := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")
	user.Website = "https://alice.example.com"
	user.Github = "alice"
	user.Description = "writer"
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}

	// Submitted empty strings clear fields; omitted fields stay put.
	body := `{"website":"","github":""}`
	c, rec := jsonRequest(e, http.MethodPut, body, user.ID, user.ID)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var stored models.User
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Website != "" || stored.Github != "" {
		t.Fatalf("cleared fields persisted: website=%q github=%q", stored.Website, stored.Github)
	}
	if stored.Description != "writer" || stored.Nickname != "alice" {
		t.Fatalf("omitted fields changed: description=%q nickname=%q", stored.Description, stored.Nickname)
	}

	// Normal overwrite still works.
	body = `{"nickname":"alicia","description":"editor"}`
	c, _ = jsonRequest(e, http.MethodPut, body, user.ID, user.ID)
	if err := h.UpdateProfile(c); err != nil {
		t.Fatalf("UpdateProfile overwrite failed: %v", err)
	}
	if err := db.First(&stored, user.ID).Error; err != nil {
		t.Fatalf("failed to reload user: %v", err)
	}
	if stored.Nickname != "alicia" || stored.Description != "editor" {
		t.Fatalf("overwrite lost: nickname=%q description=%q", stored.Nickname, stored.Description)
	}
}

func TestTrashRequiresOwner(t *testing.T) {
	db := testDB(t)
	e := newTestEcho()
	h := newUserHandler(db)
	alice := createUserWithPassword(t, db, "alice", "alice@example.com", "secret1")
	bob := createUserWithPassword(t, db, "bob", "bob@example.com", "secret2")

	c, _ := jsonRequest(e, http.MethodGet, "", alice.ID, bob.ID)
	err := h.Trash(c)
	if err == nil {
		t.Fatal("expected an error viewing another user's trash")
	}
	if code := httpStatus(t, err); code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", code)
	}

	c, rec := jsonRequest(e, http.MethodGet, "", alice.ID, alice.ID)
	if err := h.Trash(c); err != nil {
		t.Fatalf("owner should see their own trash: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
