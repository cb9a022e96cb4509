package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumen-pub/inkwell/backend/internal/metrics"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/policy"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Listing page sizes: follows/fans pages show a denser grid.
const (
	defaultPageSize = 10
	followPageSize  = 24
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	userRepository    repositories.UserRepository
	articleRepository repositories.ArticleRepository
	collectRepository repositories.CollectRepository
	followRepository  repositories.FollowRepository
	historyRepository repositories.HistoryRepository
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(
	userRepo repositories.UserRepository,
	articleRepo repositories.ArticleRepository,
	collectRepo repositories.CollectRepository,
	followRepo repositories.FollowRepository,
	historyRepo repositories.HistoryRepository,
) *UserHandler {
	return &UserHandler{
		userRepository:    userRepo,
		articleRepository: articleRepo,
		collectRepository: collectRepo,
		followRepository:  followRepo,
		historyRepository: historyRepo,
	}
}

// RegisterUserRoutes registers user-related routes. Profile reads are
// public; the trash view and mutations require authentication.
func (h *UserHandler) RegisterUserRoutes(public, protected *echo.Group) {
	public.GET("/users", h.Index)
	public.GET("/users/:id", h.Show)
	public.GET("/users/:id/articles", h.Articles)
	public.GET("/users/:id/collects", h.Collects)
	public.GET("/users/:id/follows", h.Follows)
	public.GET("/users/:id/fans", h.Fans)
	protected.GET("/users/:id/trash", h.Trash)
	protected.PUT("/users/:id", h.UpdateProfile)
	protected.PUT("/users/:id/password", h.UpdatePassword)
}

// Index lists all users, newest first
func (h *UserHandler) Index(c echo.Context) error {
	users, err := h.userRepository.GetUsers()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"users": users}})
}

// Show returns a user profile with their recent read history and
// follower/following counts
func (h *UserHandler) Show(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, limit := pageParams(c, defaultPageSize)
	histories, total, err := h.historyRepository.ListByUser(id, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	followers, _ := h.followRepository.GetFollowersCount(id)
	following, _ := h.followRepository.GetFollowingCount(id)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"user":            user,
			"histories":       histories,
			"followers_count": followers,
			"following_count": following,
		},
		"meta": listMeta(page, limit, total),
	})
}

// Articles lists a user's live articles
func (h *UserHandler) Articles(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, limit := pageParams(c, defaultPageSize)
	articles, total, err := h.articleRepository.ListByUser(user.ID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user.ToCompact(), "articles": articles},
		"meta":    listMeta(page, limit, total),
	})
}

// Trash lists the acting user's soft-deleted articles. Owner only.
func (h *UserHandler) Trash(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionViewTrash, user); err != nil {
		return err
	}

	page, limit := pageParams(c, defaultPageSize)
	articles, total, err := h.articleRepository.ListTrashedByUser(user.ID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"articles": articles},
		"meta":    listMeta(page, limit, total),
	})
}

// Collects lists the articles a user has bookmarked
func (h *UserHandler) Collects(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, limit := pageParams(c, defaultPageSize)
	articles, total, err := h.collectRepository.ListArticles(user.ID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user.ToCompact(), "articles": articles},
		"meta":    listMeta(page, limit, total),
	})
}

// Follows lists the users this user follows
func (h *UserHandler) Follows(c echo.Context) error {
	return h.listEdges(c, h.followRepository.GetFollowing, "follows")
}

// Fans lists the users following this user
func (h *UserHandler) Fans(c echo.Context) error {
	return h.listEdges(c, h.followRepository.GetFollowers, "fans")
}

func (h *UserHandler) listEdges(c echo.Context, list func(uint, int, int) ([]models.User, int64, error), key string) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	page, limit := pageParams(c, followPageSize)
	users, total, err := list(user.ID, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	compact := make([]models.UserCompact, len(users))
	for i, u := range users {
		compact[i] = u.ToCompact()
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"user": user.ToCompact(), key: compact},
		"meta":    listMeta(page, limit, total),
	})
}

// UpdateProfile updates profile fields after a policy check
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionUpdateProfile, user); err != nil {
		return err
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	// Only submitted fields are written; an empty string clears a field.
	if req.Nickname != nil {
		user.Nickname = *req.Nickname
	}
	if req.Website != nil {
		user.Website = *req.Website
	}
	if req.Weibo != nil {
		user.Weibo = *req.Weibo
	}
	if req.QQ != nil {
		user.QQ = *req.QQ
	}
	if req.Github != nil {
		user.Github = *req.Github
	}
	if req.Description != nil {
		user.Description = *req.Description
	}

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"user": user}})
}

// UpdatePassword changes a user's password. The current password is
// verified against the stored hash; bcrypt's comparison is constant
// time. A wrong current password comes back as a field error on the
// form, not a generic failure.
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	user, err := h.userRepository.GetUserByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionUpdatePassword, user); err != nil {
		return err
	}

	var req models.UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		metrics.IncPasswordChange("validation_failed")
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		metrics.IncPasswordChange("invalid_current")
		return echo.NewHTTPError(http.StatusUnprocessableEntity, map[string]string{
			"password": "current password is incorrect",
		})
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.PasswordNew), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	user.Password = string(hashed)

	if err := h.userRepository.UpdateUser(user); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	metrics.IncPasswordChange("success")
	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"message": "password updated"}})
}
