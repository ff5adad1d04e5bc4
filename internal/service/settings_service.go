package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/validation"
)

type settingsRepository interface {
	Get(ctx context.Context) (*models.SiteSettings, error)
	Merge(ctx context.Context, fields map[string]interface{}) error
}

// SettingsService manages the settings/site singleton.
type SettingsService struct {
	repo      settingsRepository
	validator *validator.Validate
	cache     *CacheService
	logger    *zap.Logger
}

func NewSettingsService(repo settingsRepository, validate *validator.Validate, cache *CacheService, logger *zap.Logger) *SettingsService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SettingsService{repo: repo, validator: validate, cache: cache, logger: logger}
}

// Get returns the stored settings. A missing singleton reads as empty settings.
func (s *SettingsService) Get(ctx context.Context) (models.SiteSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return models.SiteSettings{}, nil
		}
		s.logger.Error("failed to load site settings", zap.Error(err))
		return models.SiteSettings{}, fromStoreError(err, "")
	}
	return *settings, nil
}

// Update merges the provided fields into the singleton, leaving absent ones untouched.
func (s *SettingsService) Update(ctx context.Context, form dto.SettingsForm) (models.SiteSettings, error) {
	if err := validation.Check(s.validator, form); err != nil {
		return models.SiteSettings{}, err
	}

	fields := map[string]interface{}{}
	if form.LogoURL != nil {
		fields["logoUrl"] = *form.LogoURL
	}
	if len(fields) > 0 {
		if err := s.repo.Merge(ctx, fields); err != nil {
			s.logger.Error("failed to merge site settings", zap.Error(err))
			return models.SiteSettings{}, fromStoreError(err, "")
		}
		s.cache.InvalidateListings(ctx)
	}
	return s.Get(ctx)
}
