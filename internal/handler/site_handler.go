package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/view"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

// SiteInfo is the static part of the page chrome.
type SiteInfo struct {
	Name         string
	ContactEmail string
}

// SiteHandler renders the public HTML pages.
type SiteHandler struct {
	listing listingService
	contact contactService
	info    SiteInfo
	now     func() time.Time
}

func NewSiteHandler(listing listingService, contact contactService, info SiteInfo) *SiteHandler {
	return &SiteHandler{listing: listing, contact: contact, info: info, now: time.Now}
}

func (h *SiteHandler) Home(c *gin.Context) {
	home, _ := h.listing.Home(c.Request.Context())
	c.HTML(http.StatusOK, "home.html", view.Page{Path: "/", Site: h.chrome(home.Settings), Content: home})
}

func (h *SiteHandler) About(c *gin.Context) {
	content := view.AboutPage{Homepage: h.listing.About(c.Request.Context())}
	h.render(c, http.StatusOK, "about.html", "About", "/about", content)
}

func (h *SiteHandler) Articles(c *gin.Context) {
	section, _ := h.listing.Articles(c.Request.Context(), 0)
	h.render(c, http.StatusOK, "articles.html", "Articles", "/articles", section)
}

func (h *SiteHandler) Events(c *gin.Context) {
	events, _ := h.listing.Events(c.Request.Context())
	h.render(c, http.StatusOK, "events.html", "Events", "/events", events)
}

func (h *SiteHandler) Contact(c *gin.Context) {
	h.render(c, http.StatusOK, "contact.html", "Contact", "/contact", view.ContactPage{})
}

// SubmitContact handles the form post. Invalid input re-renders the form with the entered values kept.
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var form dto.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		h.render(c, http.StatusBadRequest, "contact.html", "Contact", "/contact", view.ContactPage{Failed: true})
		return
	}

	page := view.ContactPage{Name: form.Name, Email: form.Email, Subject: form.Subject, Message: form.Message}
	if _, err := h.contact.Submit(c.Request.Context(), form); err != nil {
		appErr := appErrors.FromError(err)
		page.Failed = true
		page.Errors = make(map[string]string, len(appErr.Fields))
		for _, f := range appErr.Fields {
			page.Errors[f.Field] = f.Message
		}
		h.render(c, appErr.Status, "contact.html", "Contact", "/contact", page)
		return
	}

	h.render(c, http.StatusOK, "contact.html", "Contact", "/contact", view.ContactPage{Sent: true})
}

func (h *SiteHandler) render(c *gin.Context, status int, name, title, path string, content interface{}) {
	c.HTML(status, name, view.Page{Title: title, Path: path, Site: h.chrome(h.listing.Settings(c.Request.Context())), Content: content})
}

func (h *SiteHandler) chrome(settings models.SiteSettings) view.Site {
	return view.Site{
		Name:         h.info.Name,
		Tagline:      view.Tagline,
		ContactEmail: h.info.ContactEmail,
		LogoURL:      settings.LogoURL,
		Year:         h.now().Year(),
	}
}
