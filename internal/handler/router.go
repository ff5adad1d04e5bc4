package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/middleware"
	"github.com/ec-club-bing/website/internal/models"
)

// Handlers groups everything RegisterRoutes mounts. Nil handlers skip their routes.
type Handlers struct {
	Site      *SiteHandler
	Listing   *ListingHandler
	Auth      *AuthHandler
	Articles  *ArticleHandler
	Events    *EventHandler
	Singleton *SingletonHandler
	Upload    *UploadHandler
	Audit     *AuditHandler
	Metrics   *MetricsHandler
}

// RouteOptions carries the cross-cutting dependencies of the admin group.
type RouteOptions struct {
	APIPrefix   string
	Tokens      middleware.TokenValidator
	AuditLog    middleware.AuditRecorder
	Logger      *zap.Logger
	MediaDir    string
	MediaPrefix string
}

// RegisterRoutes mounts the public pages, the public JSON API and the admin API on r.
func RegisterRoutes(r *gin.Engine, h Handlers, opts RouteOptions) {
	if h.Metrics != nil {
		r.GET("/health", h.Metrics.Health)
		r.GET("/ready", h.Metrics.Ready)
		r.GET("/metrics", h.Metrics.Prometheus)
	}

	if h.Site != nil {
		r.GET("/", h.Site.Home)
		r.GET("/about", h.Site.About)
		r.GET("/articles", h.Site.Articles)
		r.GET("/events", h.Site.Events)
		r.GET("/contact", h.Site.Contact)
		r.POST("/contact", h.Site.SubmitContact)
	}

	if opts.MediaDir != "" && opts.MediaPrefix != "" {
		r.Static(opts.MediaPrefix, opts.MediaDir)
	}

	prefix := opts.APIPrefix
	if prefix == "" {
		prefix = "/api/v1"
	}
	api := r.Group(prefix)

	if h.Listing != nil {
		api.GET("/home", h.Listing.Home)
		api.GET("/articles", h.Listing.Articles)
		api.GET("/events", h.Listing.Events)
		api.GET("/homepage", h.Listing.Homepage)
		api.GET("/settings", h.Listing.Settings)
		api.POST("/contact", h.Listing.Contact)
	}

	if h.Auth != nil {
		api.POST("/auth/login", h.Auth.Login)
	}

	if opts.Tokens == nil {
		return
	}

	admin := api.Group("/admin")
	admin.Use(middleware.JWT(opts.Tokens), middleware.RequireRoles(models.RoleAdmin))
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(opts.AuditLog, opts.Logger, action, resource)
	}

	if h.Auth != nil {
		admin.GET("/me", h.Auth.Me)
	}

	if h.Articles != nil {
		admin.GET("/articles", h.Articles.List)
		admin.GET("/articles/:id", h.Articles.Get)
		admin.POST("/articles", audit(models.AuditActionCreate, models.CollectionArticles), h.Articles.Create)
		admin.PUT("/articles/:id", audit(models.AuditActionUpdate, models.CollectionArticles), h.Articles.Update)
		admin.DELETE("/articles/:id", audit(models.AuditActionDelete, models.CollectionArticles), h.Articles.Delete)
	}

	if h.Events != nil {
		admin.GET("/events", h.Events.List)
		admin.GET("/events/:id", h.Events.Get)
		admin.POST("/events", audit(models.AuditActionCreate, models.CollectionEvents), h.Events.Create)
		admin.PUT("/events/:id", audit(models.AuditActionUpdate, models.CollectionEvents), h.Events.Update)
		admin.DELETE("/events/:id", audit(models.AuditActionDelete, models.CollectionEvents), h.Events.Delete)
	}

	if h.Singleton != nil {
		admin.GET("/homepage", h.Singleton.GetHomepage)
		admin.PUT("/homepage", audit(models.AuditActionUpdate, models.CollectionHomepage), h.Singleton.UpdateHomepage)
		admin.GET("/settings", h.Singleton.GetSettings)
		admin.PUT("/settings", audit(models.AuditActionUpdate, models.CollectionSettings), h.Singleton.UpdateSettings)
	}

	if h.Upload != nil {
		admin.POST("/uploads", audit(models.AuditActionUpload, "images"), h.Upload.Upload)
	}

	if h.Audit != nil {
		admin.GET("/audit-logs", h.Audit.List)
		admin.GET("/audit-logs/export", h.Audit.Export)
	}

	if h.Metrics != nil {
		admin.GET("/metrics", h.Metrics.Summary)
	}
}
