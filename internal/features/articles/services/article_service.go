package services

import (
	"context"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/models"
	"civic-sights/internal/features/articles/store"
)

// ArticleService orchestrates catalog reads and writes over the store
type ArticleService struct {
	store  store.Store
	logger *core.Logger
}

// NewArticleService creates a new article service
func NewArticleService(s store.Store, logger *core.Logger) *ArticleService {
	return &ArticleService{
		store:  s,
		logger: logger,
	}
}

// GetAllArticles returns every article, newest first
func (s *ArticleService) GetAllArticles(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	return s.store.List(ctx, store.Filter{}, req)
}

// GetPremiumArticles returns premium articles, newest first
func (s *ArticleService) GetPremiumArticles(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	premium := true
	return s.store.List(ctx, store.Filter{Premium: &premium}, req)
}

// GetFreeArticles returns free articles, newest first
func (s *ArticleService) GetFreeArticles(ctx context.Context, req models.PageRequest) (*models.Page, error) {
	premium := false
	return s.store.List(ctx, store.Filter{Premium: &premium}, req)
}

// GetArticlesByCategory returns articles in a category, newest first
func (s *ArticleService) GetArticlesByCategory(ctx context.Context, category models.Category, req models.PageRequest) (*models.Page, error) {
	return s.store.List(ctx, store.Filter{Category: &category}, req)
}

// SearchArticles returns articles whose title or content contains the keyword
func (s *ArticleService) SearchArticles(ctx context.Context, keyword string, req models.PageRequest) (*models.Page, error) {
	return s.store.List(ctx, store.Filter{Keyword: keyword}, req)
}

// GetArticlesByAuthor returns articles whose author contains the given name
func (s *ArticleService) GetArticlesByAuthor(ctx context.Context, author string, req models.PageRequest) (*models.Page, error) {
	return s.store.List(ctx, store.Filter{Author: author}, req)
}

// GetArticleByID returns an article regardless of tier
func (s *ArticleService) GetArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	return s.store.Get(ctx, id)
}

// GetFreeArticleByID returns an article only if it is free; a premium id
// misses, keeping the unauthenticated detail path off premium content.
func (s *ArticleService) GetFreeArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	return s.store.GetByTier(ctx, id, false)
}

// GetPremiumArticleByID returns an article only if it is premium
func (s *ArticleService) GetPremiumArticleByID(ctx context.Context, id int64) (*models.Article, error) {
	return s.store.GetByTier(ctx, id, true)
}

// CreateArticle validates and stores a new article
func (s *ArticleService) CreateArticle(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	if err := input.Validate(); err != nil {
		return nil, core.NewValidationError(err.Error(), err)
	}
	return s.store.Create(ctx, input)
}

// UpdateArticle validates the input and overlays it onto the stored article.
// Every mutable field is overwritten; id and createDate are preserved.
func (s *ArticleService) UpdateArticle(ctx context.Context, id int64, input *models.ArticleInput) (*models.Article, error) {
	if err := input.Validate(); err != nil {
		return nil, core.NewValidationError(err.Error(), err)
	}
	return s.store.Update(ctx, id, input)
}

// DeleteArticle removes an article by id
func (s *ArticleService) DeleteArticle(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}

// GetStats summarizes the catalog
func (s *ArticleService) GetStats(ctx context.Context) (*models.ArticleStats, error) {
	premium, err := s.store.CountByPremium(ctx, true)
	if err != nil {
		return nil, err
	}
	free, err := s.store.CountByPremium(ctx, false)
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]int, len(models.Categories()))
	for _, category := range models.Categories() {
		count, err := s.store.CountByCategory(ctx, category)
		if err != nil {
			return nil, err
		}
		byCategory[category.Slug()] = count
	}

	return &models.ArticleStats{
		TotalArticles:   premium + free,
		PremiumArticles: premium,
		FreeArticles:    free,
		ByCategory:      byCategory,
	}, nil
}
