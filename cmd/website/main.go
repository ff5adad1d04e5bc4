package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/ec-club-bing/website/api/swagger"
	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/handler"
	"github.com/ec-club-bing/website/internal/imagehost"
	"github.com/ec-club-bing/website/internal/middleware"
	"github.com/ec-club-bing/website/internal/repository"
	"github.com/ec-club-bing/website/internal/service"
	"github.com/ec-club-bing/website/internal/validation"
	"github.com/ec-club-bing/website/internal/view"
	"github.com/ec-club-bing/website/pkg/cache"
	"github.com/ec-club-bing/website/pkg/config"
	"github.com/ec-club-bing/website/pkg/jobs"
	"github.com/ec-club-bing/website/pkg/logger"
	corsmiddleware "github.com/ec-club-bing/website/pkg/middleware/cors"
	reqidmiddleware "github.com/ec-club-bing/website/pkg/middleware/requestid"
	"github.com/ec-club-bing/website/pkg/storage"
)

// @title Entrepreneur Connect API
// @version 1.0.0
// @description Public content and admin API for the Entrepreneur Connect club website
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := service.NewMetricsService()

	store, err := docstore.Open(ctx, cfg.Store, logr)
	if err != nil {
		logr.Fatal("failed to open document store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	client := docstore.NewClient(docstore.Instrument(store, metrics), logr.Named("docstore"))
	defer client.Close() //nolint:errcheck

	listingCache := newListingCache(ctx, cfg, metrics, logr)

	host, mediaDir, err := newImageHost(cfg.Images)
	if err != nil {
		logr.Fatal("failed to configure image host", zap.String("host", cfg.Images.Host), zap.Error(err))
	}

	validate := validation.New()

	articleRepo := repository.NewArticleRepository(client)
	eventRepo := repository.NewEventRepository(client)
	auditRepo := repository.NewAuditRepository(client)
	auditWriter := service.NewAuditWriter(auditRepo, logr.Named("audit"), jobs.Config{Workers: 2, BufferSize: 128, MaxRetries: 3})
	auditWriter.Start(context.Background())

	articleSvc := service.NewArticleService(articleRepo, validate, listingCache, logr)
	eventSvc := service.NewEventService(eventRepo, validate, listingCache, logr)
	homepageSvc := service.NewHomepageService(repository.NewHomepageRepository(client), validate, listingCache, logr)
	settingsSvc := service.NewSettingsService(repository.NewSettingsRepository(client), validate, listingCache, logr)
	seedSvc := service.NewSeedService(client, metrics, logr.Named("seed"))
	listingSvc := service.NewListingService(service.ListingDeps{
		Articles: articleRepo,
		Events:   eventRepo,
		Homepage: homepageSvc,
		Settings: settingsSvc,
		Seeder:   seedSvc,
	}, listingCache, metrics, logr, cfg.Site.Location())
	contactSvc := service.NewContactService(validate, logr.Named("contact"))
	uploadSvc := service.NewUploadService(host, metrics, logr, cfg.Images.MaxUploadBytes, cfg.Images.UploadTimeout)
	authSvc := service.NewAuthService(auditWriter, validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.JWT.Secret,
		AccessTokenExpiry: cfg.JWT.Expiration,
		Issuer:            cfg.JWT.Issuer,
		Accounts:          cfg.Admin.Accounts,
	})
	if len(cfg.Admin.Accounts) == 0 {
		logr.Warn("no admin accounts configured, admin API logins will fail")
	}

	if cfg.Site.SeedOnStart {
		go func() {
			if err := seedSvc.EnsureSeeded(ctx); err != nil {
				logr.Warn("initial seeding incomplete", zap.Error(err))
			}
		}()
	}

	templates, err := view.Templates()
	if err != nil {
		logr.Fatal("failed to parse page templates", zap.Error(err))
	}

	r := gin.New()
	r.SetHTMLTemplate(templates)
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))
	r.Use(middleware.WithResponseMeta())

	handler.RegisterRoutes(r, handler.Handlers{
		Site: handler.NewSiteHandler(listingSvc, contactSvc, handler.SiteInfo{
			Name:         cfg.Site.Name,
			ContactEmail: cfg.Site.ContactMail,
		}),
		Listing:   handler.NewListingHandler(listingSvc, contactSvc),
		Auth:      handler.NewAuthHandler(authSvc),
		Articles:  handler.NewArticleHandler(articleSvc),
		Events:    handler.NewEventHandler(eventSvc, cfg.Site.Location()),
		Singleton: handler.NewSingletonHandler(homepageSvc, settingsSvc),
		Upload:    handler.NewUploadHandler(uploadSvc, cfg.Images.MaxUploadBytes),
		Audit:     handler.NewAuditHandler(auditRepo),
		Metrics:   handler.NewMetricsHandler(metrics, client),
	}, handler.RouteOptions{
		APIPrefix:   cfg.APIPrefix,
		Tokens:      authSvc,
		AuditLog:    auditWriter,
		Logger:      logr.Named("audit"),
		MediaDir:    mediaDir,
		MediaPrefix: mediaPrefix(cfg.Images.MediaBaseURL),
	})

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Sugar().Infow("server starting", "addr", server.Addr, "env", cfg.Env, "store", cfg.Store.Driver, "images", cfg.Images.Host)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		logr.Sugar().Fatalw("server failed", "error", err)
	case <-ctx.Done():
		logr.Info("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logr.Error("could not stop server gracefully", zap.Error(err))
		_ = server.Close()
	}
	if err := auditWriter.Stop(shutdownCtx); err != nil {
		logr.Warn("audit entries dropped on shutdown", zap.Error(err))
	}
}

// newListingCache returns nil, a disabled cache, unless caching is on and Redis answers.
func newListingCache(ctx context.Context, cfg *config.Config, metrics *service.MetricsService, logr *zap.Logger) *service.CacheService {
	if !cfg.Cache.Enabled {
		return nil
	}
	client, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("listing cache disabled, redis unavailable", zap.Error(err))
		return nil
	}
	repo := repository.NewCacheRepository(client, logr)
	return service.NewCacheService(repo, metrics, cfg.Cache.TTL, logr, true)
}

// newImageHost returns the configured host and, for the local host, the directory to serve.
func newImageHost(cfg config.ImagesConfig) (imagehost.Host, string, error) {
	switch cfg.Host {
	case config.ImageHostLocal:
		local, err := storage.NewLocalStorage(cfg.MediaDir, cfg.MediaBaseURL)
		if err != nil {
			return nil, "", err
		}
		return imagehost.NewLocal(local), local.Dir(), nil
	case config.ImageHostCloudinary, "":
		cld, err := imagehost.NewCloudinary(cfg.CloudinaryBaseURL, cfg.CloudinaryCloudName, cfg.CloudinaryUploadPreset)
		if err != nil {
			return nil, "", err
		}
		return cld, "", nil
	default:
		return nil, "", fmt.Errorf("unknown image host %q", cfg.Host)
	}
}

func mediaPrefix(baseURL string) string {
	u, err := url.Parse(baseURL)
	if err != nil || u.Path == "" {
		return "/media"
	}
	return u.Path
}
