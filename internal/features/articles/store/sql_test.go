package store

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/migrations"
	"civic-sights/internal/features/articles/models"
)

// newSQLiteStore migrates an in-memory sqlite database and wraps it in the
// durable tier.
func newSQLiteStore(t *testing.T) *SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	logger := core.NewLogger()
	coreDB := core.NewDatabase(db, core.DriverSQLite, logger)
	require.NoError(t, migrations.NewManager(coreDB, logger).Migrate(context.Background()))

	return NewSQLStore(coreDB, logger)
}

// seedSQLStore inserts three articles with creation dates spaced a day apart
// so listing order is unambiguous: id 1 newest and free, ids 2 and 3 premium.
func seedSQLStore(t *testing.T, s *SQLStore) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	seeds := []models.Article{
		{
			Title:      "Universal Basic Income Pilots: What the Data Shows",
			MainImg:    "https://example.com/image1.jpg",
			Author:     "Kim Hana",
			CreateDate: now.Add(-24 * time.Hour),
			UpdateDate: now.Add(-24 * time.Hour),
			Content:    "A detailed analysis of basic income policy",
			Category:   models.CategoryBasicIncome,
			IsPremium:  false,
		},
		{
			Title:      "Citizen Assemblies and the Future of Democracy",
			MainImg:    "https://example.com/image2.jpg",
			Author:     "Lee Seojun",
			CreateDate: now.Add(-48 * time.Hour),
			UpdateDate: now.Add(-48 * time.Hour),
			Content:    "Why citizen participation matters",
			Category:   models.CategoryCivicEngagement,
			IsPremium:  true,
		},
		{
			Title:      "Megatrends to Watch This Year",
			MainImg:    "https://example.com/image3.jpg",
			Author:     "Park Jiwoo",
			CreateDate: now.Add(-72 * time.Hour),
			UpdateDate: now.Add(-72 * time.Hour),
			Content:    "The major megatrends shaping the decade",
			Category:   models.CategoryMegatrends,
			IsPremium:  true,
		},
	}

	for _, a := range seeds {
		_, err := s.db.ExecWithTimeout(ctx, `
			INSERT INTO news_articles (title, main_img, author, create_date, update_date, content, category, is_premium)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			a.Title, a.MainImg, a.Author, a.CreateDate, a.UpdateDate, a.Content, string(a.Category), a.IsPremium,
		)
		require.NoError(t, err)
	}
}

func TestSQLStoreCreateGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	input := &models.ArticleInput{
		Title:     "Round trip",
		MainImg:   "https://example.com/rt.jpg",
		Author:    "Tester",
		Content:   "Round trip content",
		Category:  models.CategoryCivicEngagement,
		IsPremium: true,
	}

	created, err := s.Create(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, int64(1), created.ID)
	assert.False(t, created.CreateDate.IsZero())
	assert.False(t, created.CreateDate.After(created.UpdateDate))

	got, err := s.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.MainImg, got.MainImg)
	assert.Equal(t, input.Author, got.Author)
	assert.Equal(t, input.Content, got.Content)
	assert.Equal(t, input.Category, got.Category)
	assert.Equal(t, input.IsPremium, got.IsPremium)
	assert.WithinDuration(t, created.CreateDate, got.CreateDate, time.Second)
}

func TestSQLStoreGetMisses(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	seedSQLStore(t, s)

	_, err := s.Get(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)

	// Article 1 is free, article 2 premium: tier-crossed lookups miss
	_, err = s.GetByTier(ctx, 1, true)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetByTier(ctx, 2, false)
	assert.ErrorIs(t, err, ErrNotFound)

	free, err := s.GetByTier(ctx, 1, false)
	require.NoError(t, err)
	assert.False(t, free.IsPremium)

	premium, err := s.GetByTier(ctx, 2, true)
	require.NoError(t, err)
	assert.True(t, premium.IsPremium)
}

func TestSQLStoreListFilters(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	seedSQLStore(t, s)

	page, err := s.List(ctx, Filter{}, models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, int64(1), page.Content[0].ID, "newest article first")
	assert.Equal(t, int64(3), page.Content[2].ID, "oldest article last")

	premium := true
	page, err = s.List(ctx, Filter{Premium: &premium}, models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	for _, article := range page.Content {
		assert.True(t, article.IsPremium)
	}

	category := models.CategoryBasicIncome
	page, err = s.List(ctx, Filter{Category: &category}, models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, models.CategoryBasicIncome, page.Content[0].Category)

	page, err = s.List(ctx, Filter{Keyword: "DEMOCRACY"}, models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Contains(t, page.Content[0].Title, "Democracy")

	page, err = s.List(ctx, Filter{Author: "kim"}, models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Kim Hana", page.Content[0].Author)
}

func TestSQLStoreListPaginationWindow(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	seedSQLStore(t, s)

	page, err := s.List(ctx, Filter{}, models.PageRequest{Page: 0, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Content, 2)
	assert.Equal(t, 3, page.TotalElements)
	assert.Equal(t, 2, page.TotalPages)

	page, err = s.List(ctx, Filter{}, models.PageRequest{Page: 1, Size: 2})
	require.NoError(t, err)
	assert.Len(t, page.Content, 1)

	page, err = s.List(ctx, Filter{}, models.PageRequest{Page: 5, Size: 2})
	require.NoError(t, err)
	assert.Empty(t, page.Content)
	assert.Equal(t, 3, page.TotalElements)
}

func TestSQLStoreUpdateOverlays(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	seedSQLStore(t, s)

	before, err := s.Get(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, before.MainImg)

	// mainImg omitted from the payload: the overlay clears it
	input := &models.ArticleInput{
		Title:     "Rewritten",
		Author:    before.Author,
		Content:   before.Content,
		Category:  before.Category,
		IsPremium: before.IsPremium,
	}

	updated, err := s.Update(ctx, 1, input)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten", updated.Title)
	assert.Empty(t, updated.MainImg)
	assert.True(t, updated.CreateDate.Equal(before.CreateDate))

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Rewritten", got.Title)
	assert.Empty(t, got.MainImg)

	_, err = s.Update(ctx, 999, input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	seedSQLStore(t, s)

	require.NoError(t, s.Delete(ctx, 2))

	_, err := s.Get(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Delete(ctx, 2), ErrNotFound)
}

func TestSQLStoreCounts(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)
	seedSQLStore(t, s)

	premium, err := s.CountByPremium(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, premium)

	free, err := s.CountByPremium(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, free)

	count, err := s.CountByCategory(ctx, models.CategoryMegatrends)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
