package repository

import (
	"context"
	"fmt"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

// HomepageRepository reads and writes the homepage/main singleton.
type HomepageRepository struct {
	store docstore.Store
}

func NewHomepageRepository(store docstore.Store) *HomepageRepository {
	return &HomepageRepository{store: store}
}

// Get returns the stored content or docstore.ErrNotFound.
func (r *HomepageRepository) Get(ctx context.Context) (*models.HomepageContent, error) {
	doc, err := r.store.Get(ctx, models.CollectionHomepage, models.HomepageDocumentID)
	if err != nil {
		return nil, fmt.Errorf("get homepage: %w", err)
	}
	var content models.HomepageContent
	if err := decodeDocument(*doc, &content); err != nil {
		return nil, err
	}
	return &content, nil
}

// Save replaces the singleton.
func (r *HomepageRepository) Save(ctx context.Context, content models.HomepageContent) error {
	if err := r.store.Update(ctx, models.CollectionHomepage, models.HomepageDocumentID, content.Fields(), false); err != nil {
		return fmt.Errorf("save homepage: %w", err)
	}
	return nil
}
