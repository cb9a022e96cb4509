package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumen-pub/inkwell/backend/internal/metrics"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/policy"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"gorm.io/gorm"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/users/:id/notifications", h.GetNotifications)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) enrichNotifications(notifications []models.Notification) []EnrichedNotification {
	enriched := make([]EnrichedNotification, len(notifications))
	userCache := make(map[uint]models.UserCompact)

	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n}
		if n.ActorID == 0 {
			continue
		}
		if actor, ok := userCache[n.ActorID]; ok {
			enriched[i].Actor = actor
		} else if user, err := h.userRepository.GetUserByID(n.ActorID); err == nil {
			compact := user.ToCompact()
			userCache[n.ActorID] = compact
			enriched[i].Actor = compact
		}
	}
	return enriched
}

// GetNotifications returns the owner's notification page: items
// addressed to them plus broadcasts newer than their account. The
// unread counter is snapshotted and consumed up front, before the list
// query, so notifications arriving mid-request keep their unread mark.
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
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
	if err := authorize(actor, policy.ActionViewNotifications, user); err != nil {
		return err
	}

	page, limit := pageParams(c, defaultPageSize)

	unseen, err := h.userRepository.ConsumeNoticeCount(user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	notifications, total, err := h.notificationRepository.ListVisible(user, page, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	metrics.IncNotificationView()

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data": echo.Map{
			"notifications":  h.enrichNotifications(notifications),
			"notice_count":   unseen,
			"unseen_on_page": displayedUnseen(unseen, page, limit),
		},
		"meta": listMeta(page, limit, total),
	})
}

// displayedUnseen says how many of the unseen items land on the current
// page. Always within [0, limit].
func displayedUnseen(unseen uint, page, limit int) int {
	count := int(unseen) - (page-1)*limit
	if count < 0 {
		count = 0
	}
	if count > limit {
		count = limit
	}
	return count
}
