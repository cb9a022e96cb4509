package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/policy"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
)

// getUserIDFromContext reads the user ID placed in the context by the
// JWT middleware. Zero means no authenticated identity.
func getUserIDFromContext(c echo.Context) uint {
	claims, ok := c.Get("user").(*models.JwtCustomClaims)
	if !ok || claims == nil {
		return 0
	}
	return claims.UserID
}

// currentUser loads the full acting user for policy checks.
func currentUser(c echo.Context, userRepo repositories.UserRepository) (*models.User, error) {
	id := getUserIDFromContext(c)
	if id == 0 {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := userRepo.GetUserByID(id)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
	}
	return user, nil
}

// parseIDParam parses the :id path segment.
func parseIDParam(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid ID")
	}
	return uint(id), nil
}

// pageParams reads page/limit query params with a per-route default,
// clamped to 50 like every listing in the API.
func pageParams(c echo.Context, defaultLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.QueryParam("page"))
	limit, _ = strconv.Atoi(c.QueryParam("limit"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = defaultLimit
	}
	return page, limit
}

// authorize runs the policy gate and converts a denial into the right
// HTTP error. Denials are always explicit 401/403 responses.
func authorize(actor *models.User, action policy.Action, resource policy.Resource) error {
	err := policy.Authorize(actor, action, resource)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, policy.ErrUnauthorized):
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	default:
		return echo.NewHTTPError(http.StatusForbidden, "Access denied")
	}
}

// listMeta is the pagination envelope shared by every listing response.
func listMeta(page, limit int, total int64) echo.Map {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return echo.Map{
		"currentPage":     page,
		"totalPages":      totalPages,
		"totalItems":      total,
		"itemsPerPage":    limit,
		"hasNextPage":     page < totalPages,
		"hasPreviousPage": page > 1,
	}
}
