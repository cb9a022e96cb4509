package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/lumen-pub/inkwell/backend/internal/models"
	"github.com/lumen-pub/inkwell/backend/internal/policy"
	"github.com/lumen-pub/inkwell/backend/internal/repositories"
	"gorm.io/gorm"
)

// ArticleHandler handles article-related HTTP requests
type ArticleHandler struct {
	articleRepository  repositories.ArticleRepository
	userRepository     repositories.UserRepository
	historyRepository  repositories.HistoryRepository
	collectRepository  repositories.CollectRepository
	revisionRepository repositories.RevisionRepository
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(
	articleRepo repositories.ArticleRepository,
	userRepo repositories.UserRepository,
	historyRepo repositories.HistoryRepository,
	collectRepo repositories.CollectRepository,
	revisionRepo repositories.RevisionRepository,
) *ArticleHandler {
	return &ArticleHandler{
		articleRepository:  articleRepo,
		userRepository:     userRepo,
		historyRepository:  historyRepo,
		collectRepository:  collectRepo,
		revisionRepository: revisionRepo,
	}
}

// RegisterArticleRoutes registers article-related routes
func (h *ArticleHandler) RegisterArticleRoutes(g *echo.Group) {
	g.POST("/articles", h.Create)
	g.GET("/articles/:id", h.Show)
	g.PUT("/articles/:id", h.Update)
	g.DELETE("/articles/:id", h.Trash)
	g.POST("/articles/:id/restore", h.Restore)
	g.POST("/articles/:id/collect", h.ToggleCollect)
	g.GET("/articles/:id/revisions", h.Revisions)
}

// Create publishes a new article under the acting user
func (h *ArticleHandler) Create(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	slug, err := h.articleRepository.UniqueSlug(req.Title)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	article := &models.Article{
		UserID:        currentUserID,
		Title:         req.Title,
		Slug:          slug,
		Thumb:         req.Thumb,
		Excerpt:       req.Excerpt,
		Body:          req.Body,
		IsActive:      req.IsActive,
		CommentStatus: req.CommentStatus,
	}

	if err := h.articleRepository.CreateArticle(article); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"article": article}})
}

// Show returns an article and logs the read in the viewer's history
func (h *ArticleHandler) Show(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	article, err := h.articleRepository.GetArticleByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	// Append to the viewer's read log; never fails the read.
	if viewerID := getUserIDFromContext(c); viewerID != 0 && viewerID != article.UserID {
		if err := h.historyRepository.Record(viewerID, article.ID); err != nil {
			log.Printf("failed to record history for user %d: %v", viewerID, err)
		}
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"article": article}})
}

// Update edits an article, archiving the previous content to the
// revision store first so the edit can be audited or recovered.
func (h *ArticleHandler) Update(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	article, err := h.articleRepository.GetArticleByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionManageArticle, article); err != nil {
		return err
	}

	var req models.UpdateArticleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	revision := &models.Revision{
		ArticleID: article.ID,
		EditorID:  actor.ID,
		Title:     article.Title,
		Excerpt:   article.Excerpt,
		Body:      article.Body,
	}
	if err := h.revisionRepository.CreateRevision(c.Request().Context(), revision); err != nil {
		log.Printf("failed to archive revision for article %d: %v", article.ID, err)
	}

	if req.Title != "" {
		article.Title = req.Title
	}
	if req.Thumb != "" {
		article.Thumb = req.Thumb
	}
	if req.Excerpt != "" {
		article.Excerpt = req.Excerpt
	}
	if req.Body != "" {
		article.Body = req.Body
	}
	if req.IsActive != nil {
		article.IsActive = *req.IsActive
	}
	if req.CommentStatus != nil {
		article.CommentStatus = *req.CommentStatus
	}

	if err := h.articleRepository.UpdateArticle(article); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"article": article}})
}

// Trash soft-deletes an article into the owner's trash view
func (h *ArticleHandler) Trash(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	article, err := h.articleRepository.GetArticleByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionManageArticle, article); err != nil {
		return err
	}

	if err := h.articleRepository.TrashArticle(article.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"trashed": true}})
}

// Restore brings an article back from the trash
func (h *ArticleHandler) Restore(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	article, err := h.articleRepository.GetTrashedArticleByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found in trash")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionManageArticle, article); err != nil {
		return err
	}

	if err := h.articleRepository.RestoreArticle(article.ID); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"restored": true}})
}

// ToggleCollect flips the acting user's bookmark on an article
func (h *ArticleHandler) ToggleCollect(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	article, err := h.articleRepository.GetArticleByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	collected, err := h.collectRepository.Toggle(currentUserID, article.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"collected": collected}})
}

// Revisions lists the archived content snapshots of an article
func (h *ArticleHandler) Revisions(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}
	actor, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	article, err := h.articleRepository.GetArticleByID(id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Article not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if err := authorize(actor, policy.ActionViewRevisions, article); err != nil {
		return err
	}

	page, limit := pageParams(c, defaultPageSize)
	skip := int64((page - 1) * limit)

	revisions, err := h.revisionRepository.ListByArticle(c.Request().Context(), article.ID, skip, int64(limit))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"revisions": revisions}})
}
