package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/middleware"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/pkg/response"
)

const articlesAdminPath = "/admin/articles"

type articleService interface {
	List(ctx context.Context) ([]models.Article, error)
	Get(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, form dto.ArticleForm) (*models.Article, error)
	Update(ctx context.Context, id string, form dto.ArticleForm) (*models.Article, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

// ArticleHandler exposes the article admin endpoints.
type ArticleHandler struct {
	service articleService
}

// NewArticleHandler constructs an article handler.
func NewArticleHandler(svc articleService) *ArticleHandler {
	return &ArticleHandler{service: svc}
}

// List godoc
// @Summary List articles
// @Description Every article, newest first
// @Tags Admin Articles
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/articles [get]
func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	respond(c, http.StatusOK, articles)
}

// Get godoc
// @Summary Get article
// @Tags Admin Articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/articles/{id} [get]
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, articlesAdminPath)
		return
	}
	respond(c, http.StatusOK, article)
}

// Create godoc
// @Summary Create article
// @Tags Admin Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.ArticleForm true "Article payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/articles [post]
func (h *ArticleHandler) Create(c *gin.Context) {
	var form dto.ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	article, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "")
		return
	}
	middleware.SetAuditResource(c, article.ID)
	middleware.SetRedirect(c, articlesAdminPath)
	respond(c, http.StatusCreated, article)
}

// Update godoc
// @Summary Update article
// @Tags Admin Articles
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param payload body dto.ArticleForm true "Article payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/articles/{id} [put]
func (h *ArticleHandler) Update(c *gin.Context) {
	var form dto.ArticleForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	article, err := h.service.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		respondError(c, err, articlesAdminPath)
		return
	}
	middleware.SetRedirect(c, articlesAdminPath)
	respond(c, http.StatusOK, article)
}

// Delete godoc
// @Summary Delete article
// @Description Irreversible. Requires confirm=true, otherwise answers 428 and leaves the article in place.
// @Tags Admin Articles
// @Produce json
// @Security BearerAuth
// @Param id path string true "Article ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /admin/articles/{id} [delete]
func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, err, articlesAdminPath)
		return
	}
	middleware.SetRedirect(c, articlesAdminPath)
	respond(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
