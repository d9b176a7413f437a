package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/models"
	"civic-sights/internal/features/articles/store"
)

func newTestService() *ArticleService {
	return NewArticleService(store.NewSeededMemoryStore(time.Now().UTC()), core.NewLogger())
}

func TestTierSplitDetailLookups(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	// Seed: article 1 is free, article 2 is premium
	article, err := svc.GetFreeArticleByID(ctx, 1)
	require.NoError(t, err)
	assert.False(t, article.IsPremium)

	_, err = svc.GetFreeArticleByID(ctx, 2)
	assert.ErrorIs(t, err, store.ErrNotFound, "a premium id must miss on the free path")

	article, err = svc.GetPremiumArticleByID(ctx, 2)
	require.NoError(t, err)
	assert.True(t, article.IsPremium)

	_, err = svc.GetPremiumArticleByID(ctx, 1)
	assert.ErrorIs(t, err, store.ErrNotFound, "a free id must miss on the premium path")

	// The tier-agnostic path sees both
	article, err = svc.GetArticleByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), article.ID)

	article, err = svc.GetArticleByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), article.ID)
}

func TestCategoryListingOnlyMatches(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	for _, category := range models.Categories() {
		page, err := svc.GetArticlesByCategory(ctx, category, models.PageRequest{Page: 0, Size: 25})
		require.NoError(t, err)
		for _, article := range page.Content {
			assert.Equal(t, category, article.Category)
		}
	}
}

func TestCreateArticleValidatesInput(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.CreateArticle(ctx, &models.ArticleInput{
		Author:   "Tester",
		Category: models.CategoryMegatrends,
	})
	require.Error(t, err)

	var appErr *core.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, core.ErrCodeValidation, appErr.Code)
}

func TestCreateThenGetRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	input := &models.ArticleInput{
		Title:     "Round trip",
		MainImg:   "https://example.com/rt.jpg",
		Author:    "Tester",
		Content:   "Round trip content",
		Category:  models.CategoryCivicEngagement,
		IsPremium: true,
	}

	created, err := svc.CreateArticle(ctx, input)
	require.NoError(t, err)

	got, err := svc.GetArticleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, input.Title, got.Title)
	assert.Equal(t, input.Author, got.Author)
	assert.Equal(t, input.Content, got.Content)
	assert.Equal(t, input.Category, got.Category)
	assert.Equal(t, input.IsPremium, got.IsPremium)
	assert.False(t, got.CreateDate.After(got.UpdateDate))
}

func TestUpdateOverwritesOmittedFields(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	before, err := svc.GetArticleByID(ctx, 1)
	require.NoError(t, err)
	require.NotEmpty(t, before.MainImg)

	updated, err := svc.UpdateArticle(ctx, 1, &models.ArticleInput{
		Title:    before.Title,
		Author:   before.Author,
		Content:  before.Content,
		Category: before.Category,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.MainImg, "omitted fields overwrite stored values")
	assert.Equal(t, before.CreateDate, updated.CreateDate)
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	require.NoError(t, svc.DeleteArticle(ctx, 1))
	assert.ErrorIs(t, svc.DeleteArticle(ctx, 1), store.ErrNotFound)
}

func TestStats(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	stats, err := svc.GetStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.TotalArticles)
	assert.Equal(t, 2, stats.PremiumArticles)
	assert.Equal(t, 1, stats.FreeArticles)
	assert.Equal(t, 1, stats.ByCategory["basic-income"])
	assert.Equal(t, 1, stats.ByCategory["civic-engagement"])
	assert.Equal(t, 1, stats.ByCategory["megatrends"])
}

func TestSearchAndAuthorListings(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	page, err := svc.SearchArticles(ctx, "megatrends", models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	require.NotEmpty(t, page.Content)
	for _, article := range page.Content {
		assert.Equal(t, models.CategoryMegatrends, article.Category)
	}

	page, err = svc.GetArticlesByAuthor(ctx, "Lee", models.PageRequest{Page: 0, Size: 25})
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "Lee Seojun", page.Content[0].Author)
}
