// Package store provides article persistence: a durable SQL tier, an
// in-memory fallback tier, and a tiered store that degrades from the former
// to the latter when the durable backend is unreachable.
package store

import (
	"context"
	"errors"

	"civic-sights/internal/features/articles/models"
)

// ErrNotFound is returned when no article matches the requested id (or the
// id exists but belongs to the other tier in a tier-scoped lookup).
var ErrNotFound = errors.New("article not found")

// Filter narrows a listing. Zero value lists everything.
type Filter struct {
	Category *models.Category
	Premium  *bool
	Author   string
	Keyword  string
}

// Store is the read/write contract shared by every tier
type Store interface {
	// Get retrieves an article by id regardless of tier
	Get(ctx context.Context, id int64) (*models.Article, error)

	// GetByTier retrieves an article only if its premium flag matches
	GetByTier(ctx context.Context, id int64, premium bool) (*models.Article, error)

	// List returns a page of articles matching the filter, newest first
	List(ctx context.Context, filter Filter, req models.PageRequest) (*models.Page, error)

	// Create stores a new article, assigning id and both timestamps
	Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error)

	// Update overlays every mutable field of an existing article
	Update(ctx context.Context, id int64, input *models.ArticleInput) (*models.Article, error)

	// Delete removes an article by id
	Delete(ctx context.Context, id int64) error

	// CountByPremium counts articles with the given premium flag
	CountByPremium(ctx context.Context, premium bool) (int, error)

	// CountByCategory counts articles in a category
	CountByCategory(ctx context.Context, category models.Category) (int, error)
}
