package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ec-club-bing/website/internal/dto"
	"github.com/ec-club-bing/website/internal/models"
	"github.com/ec-club-bing/website/internal/validation"
	appErrors "github.com/ec-club-bing/website/pkg/errors"
)

type articleRepository interface {
	ListLatest(ctx context.Context, limit int) ([]models.Article, error)
	FindByID(ctx context.Context, id string) (*models.Article, error)
	Create(ctx context.Context, article *models.Article) error
	Update(ctx context.Context, article *models.Article) error
	Delete(ctx context.Context, id string) error
}

const articleNotFound = "Article not found."

// ArticleService backs the article admin forms.
type ArticleService struct {
	repo      articleRepository
	validator *validator.Validate
	cache     *CacheService
	logger    *zap.Logger
}

// NewArticleService constructs the service. cache may be nil.
func NewArticleService(repo articleRepository, validate *validator.Validate, cache *CacheService, logger *zap.Logger) *ArticleService {
	if validate == nil {
		validate = validation.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArticleService{repo: repo, validator: validate, cache: cache, logger: logger}
}

// List returns every article, newest first.
func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	articles, err := s.repo.ListLatest(ctx, 0)
	if err != nil {
		s.logger.Error("failed to list articles", zap.Error(err))
		return nil, fromStoreError(err, articleNotFound)
	}
	return articles, nil
}

// Get returns a single article.
func (s *ArticleService) Get(ctx context.Context, id string) (*models.Article, error) {
	article, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fromStoreError(err, articleNotFound)
	}
	return article, nil
}

// Create validates the form and stores a new article. Nothing is written when validation fails.
func (s *ArticleService) Create(ctx context.Context, form dto.ArticleForm) (*models.Article, error) {
	form.Normalize()
	if err := validation.Check(s.validator, form); err != nil {
		return nil, err
	}
	article := articleFromForm(form)
	if err := s.repo.Create(ctx, article); err != nil {
		s.logger.Error("failed to create article", zap.Error(err))
		return nil, fromStoreError(err, articleNotFound)
	}
	s.cache.InvalidateListings(ctx)
	return article, nil
}

// Update validates the form and replaces an existing article.
func (s *ArticleService) Update(ctx context.Context, id string, form dto.ArticleForm) (*models.Article, error) {
	form.Normalize()
	if err := validation.Check(s.validator, form); err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fromStoreError(err, articleNotFound)
	}
	article := articleFromForm(form)
	article.ID = id
	if err := s.repo.Update(ctx, article); err != nil {
		s.logger.Error("failed to update article", zap.String("id", id), zap.Error(err))
		return nil, fromStoreError(err, articleNotFound)
	}
	s.cache.InvalidateListings(ctx)
	return article, nil
}

// Delete removes an article once the caller has confirmed. Without confirmation nothing changes.
func (s *ArticleService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return appErrors.Clone(appErrors.ErrConfirmationRequired, "Deleting an article cannot be undone. Confirm to continue.")
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fromStoreError(err, articleNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete article", zap.String("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, "Failed to delete the article.")
	}
	s.cache.InvalidateListings(ctx)
	return nil
}

func articleFromForm(form dto.ArticleForm) *models.Article {
	return &models.Article{
		Title:       form.Title,
		Date:        form.Date,
		Paragraph:   form.Paragraph,
		LinkedInURL: form.LinkedInURL,
		ImageURL:    form.ImageURL,
		ImageHint:   form.ImageHint,
	}
}
