package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

const (
	homeArticleLimit = 3
	homeEventLimit   = 2
)

type listingArticleReader interface {
	ListLatest(ctx context.Context, limit int) ([]models.Article, error)
}

type listingEventReader interface {
	List(ctx context.Context, filter repository.EventFilter) ([]models.Event, error)
}

type listingHomepageReader interface {
	Current(ctx context.Context) (models.HomepageContent, error)
}

type listingSettingsReader interface {
	Get(ctx context.Context) (models.SiteSettings, error)
}

type contentSeeder interface {
	EnsureSeeded(ctx context.Context) error
}

// ListingDeps groups the readers a ListingService pulls from.
type ListingDeps struct {
	Articles listingArticleReader
	Events   listingEventReader
	Homepage listingHomepageReader
	Settings listingSettingsReader
	Seeder   contentSeeder
}

// ListingService loads the read-only data behind the public pages. A section whose fetch fails is
// logged and settles as empty; it never fails the page.
type ListingService struct {
	deps     ListingDeps
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// NewListingService constructs the service. loc is the site timezone used to decide what "today" is.
func NewListingService(deps ListingDeps, cache *CacheService, metrics *MetricsService, logger *zap.Logger, loc *time.Location) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if loc == nil {
		loc = time.UTC
	}
	return &ListingService{deps: deps, cache: cache, metrics: metrics, logger: logger, location: loc, now: time.Now}
}

// Today returns the reference day for the event partition.
func (s *ListingService) Today() time.Time {
	return ReferenceDate(s.now(), s.location)
}

// Home loads the hero image, the latest articles and the next upcoming events. The sections are
// fetched concurrently and settle independently. The bool reports a cache hit.
func (s *ListingService) Home(ctx context.Context) (models.HomeView, bool) {
	s.ensureSeeded(ctx)

	today := s.Today().Format(models.EventDateLayout)
	key := "listing:home:" + today
	var view models.HomeView
	if hit, _ := s.cache.Get(ctx, key, &view); hit {
		return view, true
	}

	var (
		g                        errgroup.Group
		articles                 []models.Article
		events                   []models.Event
		homepageErr, settingsErr error
		articlesErr, eventsErr   error
	)
	g.Go(func() error {
		view.Homepage, homepageErr = s.deps.Homepage.Current(ctx)
		return nil
	})
	g.Go(func() error {
		view.Settings, settingsErr = s.deps.Settings.Get(ctx)
		return nil
	})
	g.Go(func() error {
		articles, articlesErr = s.deps.Articles.ListLatest(ctx, homeArticleLimit)
		return nil
	})
	g.Go(func() error {
		events, eventsErr = s.deps.Events.List(ctx, repository.EventFilter{From: today, Ascending: true, Limit: homeEventLimit})
		return nil
	})
	_ = g.Wait()

	s.logFailure("homepage", homepageErr)
	s.logFailure("settings", settingsErr)
	s.logFailure("home.articles", articlesErr)
	s.logFailure("home.events", eventsErr)

	view.Articles = settle(s.metrics, "home.articles", articles)
	view.Events = settle(s.metrics, "home.events", events)

	if homepageErr == nil && settingsErr == nil && articlesErr == nil && eventsErr == nil {
		_ = s.cache.Set(ctx, key, view, 0)
	}
	return view, false
}

// About returns the homepage content for the about page.
func (s *ListingService) About(ctx context.Context) models.HomepageContent {
	content, err := s.deps.Homepage.Current(ctx)
	s.logFailure("homepage", err)
	return content
}

// Settings returns the site settings, empty when they cannot be read.
func (s *ListingService) Settings(ctx context.Context) models.SiteSettings {
	settings, err := s.deps.Settings.Get(ctx)
	s.logFailure("settings", err)
	return settings
}

// MaxArticlesLimit caps a positive article limit, bounding the cached variants of the listing.
const MaxArticlesLimit = 50

// Articles returns articles newest first. A limit of zero returns all of them; larger limits are
// capped at MaxArticlesLimit.
func (s *ListingService) Articles(ctx context.Context, limit int) (models.Section[models.Article], bool) {
	s.ensureSeeded(ctx)

	switch {
	case limit < 0:
		limit = 0
	case limit > MaxArticlesLimit:
		limit = MaxArticlesLimit
	}

	key := fmt.Sprintf("listing:articles:%d", limit)
	var section models.Section[models.Article]
	if hit, _ := s.cache.Get(ctx, key, &section); hit {
		return section, true
	}

	articles, err := s.deps.Articles.ListLatest(ctx, limit)
	s.logFailure("articles", err)
	section = settle(s.metrics, "articles", articles)
	if err == nil {
		_ = s.cache.Set(ctx, key, section, 0)
	}
	return section, false
}

// Events returns every event split into upcoming, soonest first, and past, most recent first.
func (s *ListingService) Events(ctx context.Context) (models.EventsView, bool) {
	s.ensureSeeded(ctx)

	today := s.Today()
	key := "listing:events:" + today.Format(models.EventDateLayout)
	var view models.EventsView
	if hit, _ := s.cache.Get(ctx, key, &view); hit {
		return view, true
	}

	events, err := s.deps.Events.List(ctx, repository.EventFilter{})
	s.logFailure("events", err)

	upcoming, past := PartitionEvents(events, today)
	SortEventsByDate(upcoming, past)
	view.Upcoming = settle(s.metrics, "events.upcoming", upcoming)
	view.Past = settle(s.metrics, "events.past", past)

	if err == nil {
		_ = s.cache.Set(ctx, key, view, 0)
	}
	return view, false
}

// EventsByStatus returns one bucket of the partition, or every event by date descending for "all".
func (s *ListingService) EventsByStatus(ctx context.Context, status models.EventStatus) (models.Section[models.Event], bool, error) {
	switch status {
	case models.EventStatusUpcoming, models.EventStatusPast, models.EventStatusAll, "":
	default:
		return models.Section[models.Event]{}, false, appErrors.Validation("invalid status", []appErrors.FieldError{
			{Field: "status", Message: "Status must be one of all, upcoming or past."},
		})
	}

	view, hit := s.Events(ctx)
	switch status {
	case models.EventStatusUpcoming:
		return view.Upcoming, hit, nil
	case models.EventStatusPast:
		return view.Past, hit, nil
	}

	all := make([]models.Event, 0, len(view.Upcoming.Items)+len(view.Past.Items))
	all = append(all, view.Upcoming.Items...)
	all = append(all, view.Past.Items...)
	sortByDate(all, false)
	return models.NewSection(all), hit, nil
}

func (s *ListingService) ensureSeeded(ctx context.Context) {
	if s.deps.Seeder == nil {
		return
	}
	if err := s.deps.Seeder.EnsureSeeded(ctx); err != nil {
		s.logger.Warn("content seeding incomplete", zap.Error(err))
	}
}

func (s *ListingService) logFailure(section string, err error) {
	if err != nil {
		s.logger.Error("failed to load listing section", zap.String("section", section), zap.Error(err))
	}
}

func settle[T any](metrics *MetricsService, name string, items []T) models.Section[T] {
	section := models.NewSection(items)
	metrics.RecordSection(name, section.State)
	return section
}
