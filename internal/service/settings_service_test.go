package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/repository"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestSettingsServiceMissingReadsEmpty(t *testing.T) {
	svc := NewSettingsService(repository.NewSettingsRepository(docstore.NewMemoryStore()), nil, nil, nil)

	settings, err := svc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.SiteSettings{}, settings)
}

func TestSettingsServiceMergePreservesOtherFields(t *testing.T) {
	store := docstore.NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, store.Update(ctx, models.CollectionSettings, models.SettingsDocumentID,
		map[string]interface{}{"footerNote": "Est. 2019"}, false))

	svc := NewSettingsService(repository.NewSettingsRepository(store), nil, nil, nil)
	settings, err := svc.Update(ctx, dto.SettingsForm{LogoURL: strPtr("https://example.com/logo.png")})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/logo.png", settings.LogoURL)

	doc, err := store.Get(ctx, models.CollectionSettings, models.SettingsDocumentID)
	require.NoError(t, err)
	assert.Equal(t, "Est. 2019", doc.Data["footerNote"])
	assert.Equal(t, "https://example.com/logo.png", doc.Data["logoUrl"])
}

func TestSettingsServiceNilLogoLeavesStoredValue(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewSettingsService(repository.NewSettingsRepository(store), nil, nil, nil)
	ctx := context.Background()

	_, err := svc.Update(ctx, dto.SettingsForm{LogoURL: strPtr("https://example.com/logo.png")})
	require.NoError(t, err)

	settings, err := svc.Update(ctx, dto.SettingsForm{})
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/logo.png", settings.LogoURL)

	settings, err = svc.Update(ctx, dto.SettingsForm{LogoURL: strPtr("")})
	require.NoError(t, err)
	assert.Empty(t, settings.LogoURL)
}

func TestSettingsServiceRejectsInvalidLogo(t *testing.T) {
	store := docstore.NewMemoryStore()
	svc := NewSettingsService(repository.NewSettingsRepository(store), nil, nil, nil)

	_, err := svc.Update(context.Background(), dto.SettingsForm{LogoURL: strPtr("logo.png")})
	appErr := requireAppError(t, err, appErrors.ErrValidation)
	msg, _ := appErr.Field("logoUrl")
	assert.Equal(t, "A valid logo URL is required.", msg)
	assert.Equal(t, 0, store.Len(models.CollectionSettings))
}
