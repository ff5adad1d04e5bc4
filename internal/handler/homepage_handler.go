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

type homepageService interface {
	Get(ctx context.Context) (*models.HomepageContent, error)
	Update(ctx context.Context, form dto.HomepageForm) (*models.HomepageContent, error)
}

type settingsService interface {
	Get(ctx context.Context) (models.SiteSettings, error)
	Update(ctx context.Context, form dto.SettingsForm) (models.SiteSettings, error)
}

// SingletonHandler edits the homepage and settings documents.
type SingletonHandler struct {
	homepage homepageService
	settings settingsService
}

func NewSingletonHandler(homepage homepageService, settings settingsService) *SingletonHandler {
	return &SingletonHandler{homepage: homepage, settings: settings}
}

// GetHomepage godoc
// @Summary Get homepage content
// @Description Creates the document with default images when it does not exist yet
// @Tags Admin Homepage
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/homepage [get]
func (h *SingletonHandler) GetHomepage(c *gin.Context) {
	content, err := h.homepage.Get(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	respond(c, http.StatusOK, content)
}

// UpdateHomepage godoc
// @Summary Replace homepage content
// @Tags Admin Homepage
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.HomepageForm true "Homepage images"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/homepage [put]
func (h *SingletonHandler) UpdateHomepage(c *gin.Context) {
	var form dto.HomepageForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	content, err := h.homepage.Update(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "")
		return
	}
	middleware.SetRedirect(c, "/admin")
	respond(c, http.StatusOK, content)
}

// GetSettings godoc
// @Summary Get site settings
// @Tags Admin Settings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Router /admin/settings [get]
func (h *SingletonHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get(c.Request.Context())
	if err != nil {
		respondError(c, err, "")
		return
	}
	respond(c, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Merge site settings
// @Description Fields absent from the payload keep their stored value
// @Tags Admin Settings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.SettingsForm true "Settings"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/settings [put]
func (h *SingletonHandler) UpdateSettings(c *gin.Context) {
	var form dto.SettingsForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	settings, err := h.settings.Update(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "")
		return
	}
	middleware.SetRedirect(c, "/admin")
	respond(c, http.StatusOK, settings)
}
