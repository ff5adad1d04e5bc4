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

type homepageRepository interface {
	Get(ctx context.Context) (*models.HomepageContent, error)
	Save(ctx context.Context, content models.HomepageContent) error
}

// HomepageService manages the homepage/main singleton.
type HomepageService struct {
	repo      homepageRepository
	validator *validator.Validate
	cache     *CacheService
	logger    *zap.Logger
}

func NewHomepageService(repo homepageRepository, validate *validator.Validate, cache *CacheService, logger *zap.Logger) *HomepageService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomepageService{repo: repo, validator: validate, cache: cache, logger: logger}
}

// Get returns the stored content, writing the defaults first when the singleton does not exist yet.
func (s *HomepageService) Get(ctx context.Context) (*models.HomepageContent, error) {
	content, err := s.repo.Get(ctx)
	if err == nil {
		return content, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		s.logger.Error("failed to load homepage content", zap.Error(err))
		return nil, fromStoreError(err, "")
	}

	defaults := models.DefaultHomepageContent()
	if err := s.repo.Save(ctx, defaults); err != nil {
		s.logger.Error("failed to write default homepage content", zap.Error(err))
		return nil, fromStoreError(err, "")
	}
	s.logger.Info("homepage content initialised with defaults")
	return &defaults, nil
}

// Current returns the stored content for public pages. A missing singleton reads as the defaults
// without writing anything.
func (s *HomepageService) Current(ctx context.Context) (models.HomepageContent, error) {
	content, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return models.DefaultHomepageContent(), nil
		}
		return models.DefaultHomepageContent(), fromStoreError(err, "")
	}
	return *content, nil
}

// Update validates and replaces the singleton.
func (s *HomepageService) Update(ctx context.Context, form dto.HomepageForm) (*models.HomepageContent, error) {
	if err := validation.Check(s.validator, form); err != nil {
		return nil, err
	}
	content := models.HomepageContent{HeroImageURL: form.HeroImageURL, AboutImageURL: form.AboutImageURL}
	if err := s.repo.Save(ctx, content); err != nil {
		s.logger.Error("failed to save homepage content", zap.Error(err))
		return nil, fromStoreError(err, "")
	}
	s.cache.InvalidateListings(ctx)
	return &content, nil
}
