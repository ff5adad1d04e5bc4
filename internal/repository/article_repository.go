package repository

import (
	"context"
	"fmt"

	"github.com/ec-club-bing/website/internal/docstore"
	"github.com/ec-club-bing/website/internal/models"
)

// ArticleRepository stores articles in the articles collection.
type ArticleRepository struct {
	store docstore.Store
}

// NewArticleRepository constructs the repository.
func NewArticleRepository(store docstore.Store) *ArticleRepository {
	return &ArticleRepository{store: store}
}

// ListLatest returns articles newest first. A limit of zero returns all of them.
func (r *ArticleRepository) ListLatest(ctx context.Context, limit int) ([]models.Article, error) {
	docs, err := r.store.List(ctx, models.CollectionArticles, docstore.Query{
		OrderBy:   "date",
		Direction: docstore.Desc,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	articles := make([]models.Article, 0, len(docs))
	for _, doc := range docs {
		article, err := toArticle(doc)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

// FindByID returns the article or docstore.ErrNotFound.
func (r *ArticleRepository) FindByID(ctx context.Context, id string) (*models.Article, error) {
	doc, err := r.store.Get(ctx, models.CollectionArticles, id)
	if err != nil {
		return nil, fmt.Errorf("get article %s: %w", id, err)
	}
	return toArticle(*doc)
}

// Create stores the article and fills in its id.
func (r *ArticleRepository) Create(ctx context.Context, article *models.Article) error {
	id, err := r.store.Create(ctx, models.CollectionArticles, article.Fields())
	if err != nil {
		return fmt.Errorf("create article: %w", err)
	}
	article.ID = id
	return nil
}

// Update replaces the stored article.
func (r *ArticleRepository) Update(ctx context.Context, article *models.Article) error {
	if err := r.store.Update(ctx, models.CollectionArticles, article.ID, article.Fields(), false); err != nil {
		return fmt.Errorf("update article %s: %w", article.ID, err)
	}
	return nil
}

// Delete removes the article.
func (r *ArticleRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, models.CollectionArticles, id); err != nil {
		return fmt.Errorf("delete article %s: %w", id, err)
	}
	return nil
}

func toArticle(doc docstore.Document) (*models.Article, error) {
	var article models.Article
	if err := decodeDocument(doc, &article); err != nil {
		return nil, err
	}
	article.ID = doc.ID
	return &article, nil
}
