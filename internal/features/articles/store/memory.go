package store

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"civic-sights/internal/features/articles/models"
)

// MemoryStore is the fallback tier: an in-process ordered collection seeded
// with fixed sample data at construction. Writers take the lock exclusively;
// readers work on snapshot copies. Once the service is degraded onto this
// tier its contents are never reconciled with the durable backend.
type MemoryStore struct {
	mu       sync.RWMutex
	articles []models.Article
}

// NewMemoryStore creates an empty fallback store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{articles: []models.Article{}}
}

// NewSeededMemoryStore creates a fallback store preloaded with sample
// articles so listings stay serviceable during a durable-store outage.
func NewSeededMemoryStore(now time.Time) *MemoryStore {
	return &MemoryStore{articles: []models.Article{
		{
			ID:         1,
			Title:      "Universal Basic Income Pilots: What the Data Shows",
			MainImg:    "https://example.com/image1.jpg",
			Author:     "Kim Hana",
			CreateDate: now.Add(-24 * time.Hour),
			UpdateDate: now.Add(-24 * time.Hour),
			Content:    "A detailed analysis of basic income policy and the results of recent pilots...",
			Category:   models.CategoryBasicIncome,
			IsPremium:  false,
		},
		{
			ID:         2,
			Title:      "Citizen Assemblies and the Future of Democracy",
			MainImg:    "https://example.com/image2.jpg",
			Author:     "Lee Seojun",
			CreateDate: now.Add(-48 * time.Hour),
			UpdateDate: now.Add(-48 * time.Hour),
			Content:    "Why citizen participation matters and where deliberative democracy is heading...",
			Category:   models.CategoryCivicEngagement,
			IsPremium:  true,
		},
		{
			ID:         3,
			Title:      "Megatrends to Watch This Year",
			MainImg:    "https://example.com/image3.jpg",
			Author:     "Park Jiwoo",
			CreateDate: now.Add(-72 * time.Hour),
			UpdateDate: now.Add(-72 * time.Hour),
			Content:    "The major megatrends shaping the decade and what they mean for policy...",
			Category:   models.CategoryMegatrends,
			IsPremium:  true,
		},
	}}
}

func matches(article *models.Article, filter Filter) bool {
	if filter.Category != nil && article.Category != *filter.Category {
		return false
	}
	if filter.Premium != nil && article.IsPremium != *filter.Premium {
		return false
	}
	if filter.Author != "" && !strings.Contains(strings.ToLower(article.Author), strings.ToLower(filter.Author)) {
		return false
	}
	if filter.Keyword != "" {
		keyword := strings.ToLower(filter.Keyword)
		if !strings.Contains(strings.ToLower(article.Title), keyword) &&
			!strings.Contains(strings.ToLower(article.Content), keyword) {
			return false
		}
	}
	return true
}

// Get retrieves an article by id regardless of tier
func (s *MemoryStore) Get(ctx context.Context, id int64) (*models.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.articles {
		if s.articles[i].ID == id {
			article := s.articles[i]
			return &article, nil
		}
	}
	return nil, ErrNotFound
}

// GetByTier retrieves an article only if its premium flag matches
func (s *MemoryStore) GetByTier(ctx context.Context, id int64, premium bool) (*models.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if article.IsPremium != premium {
		return nil, ErrNotFound
	}
	return article, nil
}

// List returns a page of articles matching the filter, newest first
func (s *MemoryStore) List(ctx context.Context, filter Filter, req models.PageRequest) (*models.Page, error) {
	s.mu.RLock()
	matched := make([]models.Article, 0, len(s.articles))
	for i := range s.articles {
		if matches(&s.articles[i], filter) {
			matched = append(matched, s.articles[i])
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].CreateDate.Equal(matched[j].CreateDate) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreateDate.After(matched[j].CreateDate)
	})

	total := len(matched)
	start := req.Offset()
	if start > total {
		start = total
	}
	end := start + req.Size
	if end > total {
		end = total
	}

	return models.NewPage(matched[start:end], req, total), nil
}

// Create stores a new article with a locally-monotonic id and fresh timestamps
func (s *MemoryStore) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	article := models.Article{
		ID:         int64(len(s.articles) + 1),
		CreateDate: now,
	}
	input.Apply(&article, now)

	s.articles = append(s.articles, article)
	return &article, nil
}

// Update overlays every mutable field of the matching article in place
func (s *MemoryStore) Update(ctx context.Context, id int64, input *models.ArticleInput) (*models.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.articles {
		if s.articles[i].ID == id {
			input.Apply(&s.articles[i], time.Now().UTC())
			article := s.articles[i]
			return &article, nil
		}
	}
	return nil, ErrNotFound
}

// Delete removes the first article matching the id
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.articles {
		if s.articles[i].ID == id {
			s.articles = append(s.articles[:i], s.articles[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// CountByPremium counts articles with the given premium flag
func (s *MemoryStore) CountByPremium(ctx context.Context, premium bool) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.articles {
		if s.articles[i].IsPremium == premium {
			count++
		}
	}
	return count, nil
}

// CountByCategory counts articles in a category
func (s *MemoryStore) CountByCategory(ctx context.Context, category models.Category) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for i := range s.articles {
		if s.articles[i].Category == category {
			count++
		}
	}
	return count, nil
}
