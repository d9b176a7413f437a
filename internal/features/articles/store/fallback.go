package store

import (
	"context"
	"errors"
	"sync/atomic"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/models"
)

// Serving tiers
const (
	TierPrimary  = "primary"
	TierFallback = "fallback"
)

// TieredStore degrades from a durable primary to an in-memory fallback.
// Every operation tries the primary exactly once; any failure other than
// ErrNotFound is treated as a backend outage and the operation is retried
// against the fallback, never surfacing the primary error to the caller.
//
// Known limitation: writes served by the fallback are not reconciled into
// the primary once it recovers, so a degraded period can leave the two tiers
// divergent. The tier metrics and logs make such periods visible.
type TieredStore struct {
	primary  Store
	fallback Store
	logger   *core.Logger
	lastTier atomic.Value
}

// NewTieredStore composes the two tiers
func NewTieredStore(primary, fallback Store, logger *core.Logger) *TieredStore {
	ts := &TieredStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
	ts.lastTier.Store(TierPrimary)
	return ts
}

// LastTier reports which tier served the most recent operation
func (ts *TieredStore) LastTier() string {
	return ts.lastTier.Load().(string)
}

// shouldFallBack distinguishes a real answer from a backend outage
func shouldFallBack(err error) bool {
	return err != nil && !errors.Is(err, ErrNotFound)
}

func (ts *TieredStore) served(operation, tier string) {
	ts.lastTier.Store(tier)
	storeRequests.WithLabelValues(tier, operation).Inc()
}

func (ts *TieredStore) degrade(operation string, err error) {
	fallbackActivations.Inc()
	ts.logger.Warn("Durable store unavailable, serving from fallback", "operation", operation, "error", err)
}

// Get retrieves an article by id regardless of tier
func (ts *TieredStore) Get(ctx context.Context, id int64) (*models.Article, error) {
	article, err := ts.primary.Get(ctx, id)
	if shouldFallBack(err) {
		ts.degrade("get", err)
		ts.served("get", TierFallback)
		return ts.fallback.Get(ctx, id)
	}
	ts.served("get", TierPrimary)
	return article, err
}

// GetByTier retrieves an article only if its premium flag matches
func (ts *TieredStore) GetByTier(ctx context.Context, id int64, premium bool) (*models.Article, error) {
	article, err := ts.primary.GetByTier(ctx, id, premium)
	if shouldFallBack(err) {
		ts.degrade("get_by_tier", err)
		ts.served("get_by_tier", TierFallback)
		return ts.fallback.GetByTier(ctx, id, premium)
	}
	ts.served("get_by_tier", TierPrimary)
	return article, err
}

// List returns a page of articles matching the filter, newest first
func (ts *TieredStore) List(ctx context.Context, filter Filter, req models.PageRequest) (*models.Page, error) {
	page, err := ts.primary.List(ctx, filter, req)
	if shouldFallBack(err) {
		ts.degrade("list", err)
		ts.served("list", TierFallback)
		return ts.fallback.List(ctx, filter, req)
	}
	ts.served("list", TierPrimary)
	return page, err
}

// Create stores a new article
func (ts *TieredStore) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	article, err := ts.primary.Create(ctx, input)
	if shouldFallBack(err) {
		ts.degrade("create", err)
		ts.served("create", TierFallback)
		return ts.fallback.Create(ctx, input)
	}
	ts.served("create", TierPrimary)
	return article, err
}

// Update overlays every mutable field of an existing article
func (ts *TieredStore) Update(ctx context.Context, id int64, input *models.ArticleInput) (*models.Article, error) {
	article, err := ts.primary.Update(ctx, id, input)
	if shouldFallBack(err) {
		ts.degrade("update", err)
		ts.served("update", TierFallback)
		return ts.fallback.Update(ctx, id, input)
	}
	ts.served("update", TierPrimary)
	return article, err
}

// Delete removes an article by id
func (ts *TieredStore) Delete(ctx context.Context, id int64) error {
	err := ts.primary.Delete(ctx, id)
	if shouldFallBack(err) {
		ts.degrade("delete", err)
		ts.served("delete", TierFallback)
		return ts.fallback.Delete(ctx, id)
	}
	ts.served("delete", TierPrimary)
	return err
}

// CountByPremium counts articles with the given premium flag
func (ts *TieredStore) CountByPremium(ctx context.Context, premium bool) (int, error) {
	count, err := ts.primary.CountByPremium(ctx, premium)
	if shouldFallBack(err) {
		ts.degrade("count_by_premium", err)
		ts.served("count_by_premium", TierFallback)
		return ts.fallback.CountByPremium(ctx, premium)
	}
	ts.served("count_by_premium", TierPrimary)
	return count, err
}

// CountByCategory counts articles in a category
func (ts *TieredStore) CountByCategory(ctx context.Context, category models.Category) (int, error) {
	count, err := ts.primary.CountByCategory(ctx, category)
	if shouldFallBack(err) {
		ts.degrade("count_by_category", err)
		ts.served("count_by_category", TierFallback)
		return ts.fallback.CountByCategory(ctx, category)
	}
	ts.served("count_by_category", TierPrimary)
	return count, err
}
