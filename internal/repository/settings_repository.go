package repository

import (
	"context"
	"fmt"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

// SettingsRepository reads and merge-writes the settings/site singleton.
type SettingsRepository struct {
	store docstore.Store
}

func NewSettingsRepository(store docstore.Store) *SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the stored settings or docstore.ErrNotFound.
func (r *SettingsRepository) Get(ctx context.Context) (*models.SiteSettings, error) {
	doc, err := r.store.Get(ctx, models.CollectionSettings, models.SettingsDocumentID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	var settings models.SiteSettings
	if err := decodeDocument(*doc, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Merge writes the given fields, preserving every other stored field.
func (r *SettingsRepository) Merge(ctx context.Context, fields map[string]interface{}) error {
	if err := r.store.Update(ctx, models.CollectionSettings, models.SettingsDocumentID, fields, true); err != nil {
		return fmt.Errorf("merge settings: %w", err)
	}
	return nil
}
