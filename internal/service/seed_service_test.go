package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
)

func TestEnsureSeededFillsEmptyCollections(t *testing.T) {
	store := docstore.NewMemoryStore()
	metrics := NewMetricsService()
	svc := NewSeedService(docstore.NewClient(store, nil), metrics, nil)

	require.NoError(t, svc.EnsureSeeded(context.Background()))
	assert.Equal(t, len(SampleArticles()), store.Len(models.CollectionArticles))
	assert.Equal(t, len(SampleEvents()), store.Len(models.CollectionEvents))
	assert.EqualValues(t, 6, metrics.Snapshot().SeededRecords)

	articles, err := repository.NewArticleRepository(store).ListLatest(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Welcome Back: Reflecting on Our Recent GIM Sessions", articles[0].Title)
	assert.Equal(t, "presentation business", articles[0].ImageHint)
}

func TestEnsureSeededConcurrentCallersInsertOnce(t *testing.T) {
	store := docstore.NewMemoryStore()
	metrics := NewMetricsService()
	svc := NewSeedService(docstore.NewClient(store, nil), metrics, nil)

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, svc.EnsureSeeded(context.Background()))
		}()
	}
	wg.Wait()

	assert.Equal(t, 3, store.Len(models.CollectionArticles))
	assert.Equal(t, 3, store.Len(models.CollectionEvents))
	assert.EqualValues(t, 6, metrics.Snapshot().SeededRecords)
}

func TestEnsureSeededSkipsPopulatedCollection(t *testing.T) {
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, repository.NewEventRepository(store).Create(ctx, &models.Event{
		Title: "Existing event", Date: "2024-05-01", Description: "Already here before the seeder ran.",
	}))

	svc := NewSeedService(docstore.NewClient(store, nil), nil, nil)
	require.NoError(t, svc.EnsureSeeded(ctx))
	assert.Equal(t, 1, store.Len(models.CollectionEvents))
	assert.Equal(t, 3, store.Len(models.CollectionArticles))
}

func TestEnsureSeededReportsCheckFailure(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.FailWith(errors.New("permission denied"))
	svc := NewSeedService(docstore.NewClient(store, nil), nil, nil)

	err := svc.EnsureSeeded(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, docstore.ErrUnavailable)
	assert.Contains(t, err.Error(), "seed articles")
	assert.Contains(t, err.Error(), "seed events")

	store.FailWith(nil)
	assert.Error(t, svc.EnsureSeeded(context.Background()), "outcome is kept for the process lifetime")
	assert.Equal(t, 0, store.Len(models.CollectionArticles))
}

func TestSampleRecordsAreValidForms(t *testing.T) {
	for _, a := range SampleArticles() {
		assert.GreaterOrEqual(t, len(a.Title), 5)
		assert.GreaterOrEqual(t, len(a.Paragraph), 10)
		_, ok := parseEventDate(a.Date)
		assert.True(t, ok, a.Date)
	}
	for _, e := range SampleEvents() {
		assert.GreaterOrEqual(t, len(e.Title), 5)
		assert.GreaterOrEqual(t, len(e.Description), 10)
		_, ok := parseEventDate(e.Date)
		assert.True(t, ok, e.Date)
	}
}
