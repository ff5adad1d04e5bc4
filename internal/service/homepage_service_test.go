package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

func TestHomepageServiceGetCreatesDefaults(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewHomepageService(repository.NewHomepageRepository(store), nil, nil, nil)

	content, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultHomepageContent(), *content)
	assert.Equal(t, 1, store.Len(models.CollectionHomepage))

	doc, err := store.Get(context.Background(), models.CollectionHomepage, models.HomepageDocumentID)
	require.NoError(t, err)
	assert.Equal(t, "https://picsum.photos/1920/1080", doc.Data["heroImageUrl"])
}

func TestHomepageServiceCurrentDoesNotWrite(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewHomepageService(repository.NewHomepageRepository(store), nil, nil, nil)

	content, err := svc.Current(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.DefaultHomepageContent(), content)
	assert.Equal(t, 0, store.Len(models.CollectionHomepage))
}

func TestHomepageServiceUpdate(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewHomepageService(repository.NewHomepageRepository(store), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, dto.HomepageForm{HeroImageURL: "not-a-url", AboutImageURL: "https://example.com/about.png"})
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	msg, _ := appErr.Field("heroImageUrl")
	assert.Equal(t, "A valid hero image URL is required.", msg)
	assert.Equal(t, 0, store.Len(models.CollectionHomepage))

	form := dto.HomepageForm{HeroImageURL: "https://example.com/hero.png", AboutImageURL: "https://example.com/about.png"}
	_, err = svc.Update(ctx, form)
	require.NoError(t, err)

	content, err := svc.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/hero.png", content.HeroImageURL)
	assert.Equal(t, "https://example.com/about.png", content.AboutImageURL)
}

func TestHomepageServiceStoreFailure(t *testing.T) {
	store := docstore.NewMemoryStore()
	store.FailWith(errors.New("deadline exceeded"))
	svc := NewHomepageService(repository.NewHomepageRepository(store), nil, nil, nil)

	_, err := svc.Get(context.Background())
	requireAppError(t, err, appErrors.ErrStoreUnavailable)

	content, err := svc.Current(context.Background())
	requireAppError(t, err, appErrors.ErrStoreUnavailable)
	assert.Equal(t, models.DefaultHomepageContent(), content)
}
