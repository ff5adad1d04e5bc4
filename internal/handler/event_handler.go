package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/middleware"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/service"
	"github.com/ec-club-bing/website/pkg/response"
)

const eventsAdminPath = "/admin/events"

type eventService interface {
	ListPartitioned(ctx context.Context, reference time.Time) (*models.EventBuckets, error)
	Get(ctx context.Context, id string) (*models.Event, error)
	Create(ctx context.Context, form dto.EventForm) (*models.Event, error)
	Update(ctx context.Context, id string, form dto.EventForm) (*models.Event, error)
	Delete(ctx context.Context, id string, confirmed bool) error
}

// EventHandler exposes the event admin endpoints.
type EventHandler struct {
	service  eventService
	location *time.Location
	now      func() time.Time
}

// NewEventHandler constructs an event handler. "Today" is taken in loc.
func NewEventHandler(svc eventService, loc *time.Location) *EventHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &EventHandler{service: svc, location: loc, now: time.Now}
}

// List godoc
// @Summary List events
// @Description Every event split into upcoming (soonest first) and past (most recent first)
// @Tags Admin Events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/events [get]
func (h *EventHandler) List(c *gin.Context) {
	buckets, err := h.service.ListPartitioned(c.Request.Context(), service.ReferenceDate(h.now(), h.location))
	if err != nil {
		respondError(c, err, "")
		return
	}
	respond(c, http.StatusOK, buckets)
}

// Get godoc
// @Summary Get event
// @Tags Admin Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id} [get]
func (h *EventHandler) Get(c *gin.Context) {
	event, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, eventsAdminPath)
		return
	}
	respond(c, http.StatusOK, event)
}

// Create godoc
// @Summary Create event
// @Tags Admin Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.EventForm true "Event payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /admin/events [post]
func (h *EventHandler) Create(c *gin.Context) {
	var form dto.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	event, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		respondError(c, err, "")
		return
	}
	middleware.SetAuditResource(c, event.ID)
	middleware.SetRedirect(c, eventsAdminPath)
	respond(c, http.StatusCreated, event)
}

// Update godoc
// @Summary Update event
// @Tags Admin Events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param payload body dto.EventForm true "Event payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/events/{id} [put]
func (h *EventHandler) Update(c *gin.Context) {
	var form dto.EventForm
	if err := c.ShouldBindJSON(&form); err != nil {
		response.Error(c, bindError(err))
		return
	}
	event, err := h.service.Update(c.Request.Context(), c.Param("id"), form)
	if err != nil {
		respondError(c, err, eventsAdminPath)
		return
	}
	middleware.SetRedirect(c, eventsAdminPath)
	respond(c, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete event
// @Description Irreversible. Requires confirm=true, otherwise answers 428 and leaves the event in place.
// @Tags Admin Events
// @Produce json
// @Security BearerAuth
// @Param id path string true "Event ID"
// @Param confirm query bool true "Confirm deletion"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 428 {object} response.Envelope
// @Router /admin/events/{id} [delete]
func (h *EventHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.service.Delete(c.Request.Context(), id, confirmed(c)); err != nil {
		respondError(c, err, eventsAdminPath)
		return
	}
	middleware.SetRedirect(c, eventsAdminPath)
	respond(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
