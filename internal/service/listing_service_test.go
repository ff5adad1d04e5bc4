package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

type failingArticles struct{}

func (failingArticles) ListLatest(context.Context, int) ([]models.Article, error) {
	return nil, errors.New("store offline")
}

// memoryCache is an in-process CacheRepository used to observe listing caching.
type memoryCache struct {
	entries map[string]interface{}
	sets    int
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	v, ok := m.entries[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	switch d := dest.(type) {
	case *models.HomeView:
		*d = v.(models.HomeView)
	case *models.EventsView:
		*d = v.(models.EventsView)
	case *models.Section[models.Article]:
		*d = v.(models.Section[models.Article])
	}
	return nil
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	m.entries[key] = value
	m.sets++
	return nil
}

func (m *memoryCache) DeleteByPattern(context.Context, string) error {
	m.entries = map[string]interface{}{}
	return nil
}

type listingFixture struct {
	store   *docstore.MemoryStore
	svc     *ListingService
	cache   *memoryCache
	metrics *MetricsService
}

func newListingFixture(t *testing.T, now time.Time) listingFixture {
	t.Helper()
	store := docstore.NewMemoryStore()
	cacheRepo := &memoryCache{entries: map[string]interface{}{}}
	metrics := NewMetricsService()
	cache := NewCacheService(cacheRepo, metrics, time.Minute, nil, true)

	deps := ListingDeps{
		Articles: repository.NewArticleRepository(store),
		Events:   repository.NewEventRepository(store),
		Homepage: NewHomepageService(repository.NewHomepageRepository(store), nil, nil, nil),
		Settings: NewSettingsService(repository.NewSettingsRepository(store), nil, nil, nil),
	}
	svc := NewListingService(deps, cache, metrics, nil, time.UTC)
	svc.now = func() time.Time { return now }
	return listingFixture{store: store, svc: svc, cache: cacheRepo, metrics: metrics}
}

func addEvents(t *testing.T, store docstore.Store, dates ...string) {
	t.Helper()
	repo := repository.NewEventRepository(store)
	for _, date := range dates {
		require.NoError(t, repo.Create(context.Background(), &models.Event{
			Title: "Event " + date, Date: date, Description: "Club event on " + date,
		}))
	}
}

func addArticles(t *testing.T, store docstore.Store, dates ...string) {
	t.Helper()
	repo := repository.NewArticleRepository(store)
	for _, date := range dates {
		require.NoError(t, repo.Create(context.Background(), &models.Article{
			Title: "Article " + date, Date: date, Paragraph: "Recap of " + date,
			LinkedInURL: "https://www.linkedin.com/", ImageURL: "https://example.com/a.png",
		}))
	}
}

func TestListingHomeSections(t *testing.T) {
	f := newListingFixture(t, time.Date(2024, 3, 1, 15, 0, 0, 0, time.UTC))
	addArticles(t, f.store, "2024-01-05", "2024-02-10", "2023-12-01", "2024-02-28")
	addEvents(t, f.store, "2024-01-10", "2024-06-01", "2024-03-01", "2024-04-20")

	view, hit := f.svc.Home(context.Background())
	assert.False(t, hit)
	assert.Equal(t, models.DefaultHomepageContent(), view.Homepage)

	require.Equal(t, models.ListingLoaded, view.Articles.State)
	require.Len(t, view.Articles.Items, 3)
	assert.Equal(t, "2024-02-28", view.Articles.Items[0].Date)
	assert.Equal(t, "2024-01-05", view.Articles.Items[2].Date)

	require.Equal(t, models.ListingLoaded, view.Events.State)
	require.Len(t, view.Events.Items, 2)
	assert.Equal(t, "2024-03-01", view.Events.Items[0].Date, "today counts as upcoming")
	assert.Equal(t, "2024-04-20", view.Events.Items[1].Date)

	cached, hit := f.svc.Home(context.Background())
	assert.True(t, hit)
	assert.Equal(t, view, cached)
}

func TestListingHomeEmptyCollections(t *testing.T) {
	f := newListingFixture(t, time.Now())

	view, _ := f.svc.Home(context.Background())
	assert.Equal(t, models.ListingEmpty, view.Articles.State)
	assert.Empty(t, view.Articles.Items)
	assert.Equal(t, models.ListingEmpty, view.Events.State)
}

func TestListingHomeFailedSectionIsEmptyAndNotCached(t *testing.T) {
	f := newListingFixture(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	addEvents(t, f.store, "2024-06-01")
	f.svc.deps.Articles = failingArticles{}

	view, _ := f.svc.Home(context.Background())
	assert.Equal(t, models.ListingEmpty, view.Articles.State)
	assert.Equal(t, models.ListingLoaded, view.Events.State)
	assert.Equal(t, 0, f.cache.sets)
}

func TestListingEventsPartition(t *testing.T) {
	f := newListingFixture(t, time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC))
	addEvents(t, f.store, "2024-01-10", "2024-06-01", "2023-11-30", "2024-03-15")

	view, _ := f.svc.Events(context.Background())
	assert.Equal(t, []string{"2024-03-15", "2024-06-01"}, dates(view.Upcoming.Items))
	assert.Equal(t, []string{"2024-01-10", "2023-11-30"}, dates(view.Past.Items))

	upcoming, _, err := f.svc.EventsByStatus(context.Background(), models.EventStatusUpcoming)
	require.NoError(t, err)
	assert.Equal(t, view.Upcoming, upcoming)

	all, _, err := f.svc.EventsByStatus(context.Background(), models.EventStatusAll)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-06-01", "2024-03-15", "2024-01-10", "2023-11-30"}, dates(all.Items))

	_, _, err = f.svc.EventsByStatus(context.Background(), "someday")
	requireAppError(t, err, appErrors.ErrValidation)
}

func TestListingEventsUsesSiteTimezone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	f := newListingFixture(t, time.Date(2024, 3, 2, 2, 0, 0, 0, time.UTC))
	f.svc.location = ny
	addEvents(t, f.store, "2024-03-01")

	view, _ := f.svc.Events(context.Background())
	assert.Len(t, view.Upcoming.Items, 1, "still March 1st in New York")
	assert.Equal(t, models.ListingEmpty, view.Past.State)
}

func TestListingSeedsBeforeReading(t *testing.T) {
	f := newListingFixture(t, time.Now())
	f.svc.deps.Seeder = NewSeedService(docstore.NewClient(f.store, nil), nil, nil)

	section, _ := f.svc.Articles(context.Background(), 0)
	assert.Equal(t, models.ListingLoaded, section.State)
	assert.Len(t, section.Items, 3)
}

func TestListingCacheInvalidatedOnAdminWrite(t *testing.T) {
	f := newListingFixture(t, time.Now())
	addArticles(t, f.store, "2024-01-05")

	_, hit := f.svc.Articles(context.Background(), 0)
	assert.False(t, hit)
	_, hit = f.svc.Articles(context.Background(), 0)
	assert.True(t, hit)

	cache := NewCacheService(f.cache, nil, time.Minute, nil, true)
	articles := NewArticleService(repository.NewArticleRepository(f.store), nil, cache, nil)
	_, err := articles.Create(context.Background(), validArticleForm())
	require.NoError(t, err)

	section, hit := f.svc.Articles(context.Background(), 0)
	assert.False(t, hit)
	assert.Len(t, section.Items, 2)
}

func dates(events []models.Event) []string {
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.Date)
	}
	return out
}

func TestListingArticlesLimitIsCapped(t *testing.T) {
	f := newListingFixture(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	addArticles(t, f.store, "2024-01-10", "2024-02-01")
	ctx := context.Background()

	for _, limit := range []int{51, 500, 1 << 20} {
		section, _ := f.svc.Articles(ctx, limit)
		assert.Len(t, section.Items, 2)
	}

	assert.Len(t, f.cache.entries, 1)
	assert.Contains(t, f.cache.entries, "listing:articles:50")
	assert.Equal(t, 1, f.cache.sets)
}
