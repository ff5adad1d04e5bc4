package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/middleware"
	"github.com/ec-club-bing/website/internal/models"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
	"github.com/ec-club-bing/website/pkg/response"
)

type listingService interface {
	Home(ctx context.Context) (models.HomeView, bool)
	About(ctx context.Context) models.HomepageContent
	Settings(ctx context.Context) models.SiteSettings
	Articles(ctx context.Context, limit int) (models.Section[models.Article], bool)
	Events(ctx context.Context) (models.EventsView, bool)
	EventsByStatus(ctx context.Context, status models.EventStatus) (models.Section[models.Event], bool, error)
}

type contactService interface {
	Submit(ctx context.Context, form dto.ContactForm) (*models.ContactMessage, error)
}

// ListingHandler serves the public read endpoints and the contact form as JSON.
type ListingHandler struct {
	listing listingService
	contact contactService
}

func NewListingHandler(listing listingService, contact contactService) *ListingHandler {
	return &ListingHandler{listing: listing, contact: contact}
}

// Home godoc
// @Summary Home page data
// @Description Hero image, latest three articles and next two upcoming events
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /home [get]
func (h *ListingHandler) Home(c *gin.Context) {
	view, hit := h.listing.Home(c.Request.Context())
	middleware.SetCacheHit(c, hit)
	respond(c, http.StatusOK, view)
}

// Articles godoc
// @Summary List articles
// @Tags Public
// @Produce json
// @Param limit query int false "Maximum number of articles (capped at 50), 0 for all"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /articles [get]
func (h *ListingHandler) Articles(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			response.Error(c, appErrors.Validation("invalid limit", []appErrors.FieldError{
				{Field: "limit", Message: "Limit must be a non-negative number."},
			}))
			return
		}
		limit = n
	}
	section, hit := h.listing.Articles(c.Request.Context(), limit)
	middleware.SetCacheHit(c, hit)
	respond(c, http.StatusOK, section)
}

// Events godoc
// @Summary List events
// @Description status=upcoming (soonest first), past (most recent first) or all (latest date first)
// @Tags Public
// @Produce json
// @Param status query string false "all, upcoming or past"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /events [get]
func (h *ListingHandler) Events(c *gin.Context) {
	status := models.EventStatus(c.Query("status"))
	if status == "" {
		view, hit := h.listing.Events(c.Request.Context())
		middleware.SetCacheHit(c, hit)
		respond(c, http.StatusOK, view)
		return
	}
	section, hit, err := h.listing.EventsByStatus(c.Request.Context(), status)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, hit)
	respond(c, http.StatusOK, section)
}

// Homepage godoc
// @Summary Homepage images
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /homepage [get]
func (h *ListingHandler) Homepage(c *gin.Context) {
	respond(c, http.StatusOK, h.listing.About(c.Request.Context()))
}

// Settings godoc
// @Summary Site settings
// @Tags Public
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /settings [get]
func (h *ListingHandler) Settings(c *gin.Context) {
	respond(c, http.StatusOK, h.listing.Settings(c.Request.Context()))
}

// Contact godoc
// @Summary Send a message to the club
// @Tags Public
// @Accept json
// @Produce json
// @Param payload body dto.ContactForm true "Message"
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /contact [post]
func (h *ListingHandler) Contact(c *gin.Context) {
	var form dto.ContactForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	msg, err := h.contact.Submit(c.Request.Context(), form)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusAccepted, gin.H{"receivedAt": msg.ReceivedAt, "message": "Thanks for reaching out. We'll get back to you soon."})
}
