package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumen-pub/inkwell/backend/internal/metrics"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"gorm.io/gorm"
)

// FollowHandler handles the follow toggle
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	userRepository         repositories.UserRepository
	notificationRepository repositories.NotificationRepository
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifRepo repositories.NotificationRepository) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		userRepository:         userRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
}

// ToggleFollow flips the follow edge from the acting user to the target
// and reports the resulting state. Toggling twice returns to the
// original state; the repository keeps the pair unique under races.
func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if currentUserID == targetID {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(targetID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "User not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	following, err := h.followRepository.Toggle(currentUserID, target.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	if following {
		metrics.IncFollowToggle("followed")
		// Tell the followee. Notification delivery is best effort and
		// never fails the toggle.
		if actor, err := h.userRepository.GetUserByID(currentUserID); err == nil {
			notif := &models.Notification{
				Type:        models.NotificationTypeFollow,
				ActorID:     currentUserID,
				RecipientID: target.ID,
				Message:     actor.Nickname + " started following you",
			}
			if err := h.notificationRepository.CreateNotification(notif); err == nil {
				_ = h.userRepository.IncrementNoticeCount(target.ID)
			}
		}
	} else {
		metrics.IncFollowToggle("unfollowed")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": following}})
}
