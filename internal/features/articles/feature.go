// Package articles is the news-article catalog feature: models, storage
// tiers, orchestration service and HTTP handlers.
package articles

import (
	"context"
	"net/http"
	"time"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/handlers"
	"civic-sights/internal/features/articles/migrations"
	"civic-sights/internal/features/articles/services"
	"civic-sights/internal/features/articles/store"
	"civic-sights/internal/gateway"
)

// Feature represents the article catalog feature
type Feature struct {
	*core.BaseFeature
	config       *Config
	migrationMgr *migrations.Manager
	tieredStore  *store.TieredStore
	service      *services.ArticleService
	handlers     *handlers.Handlers
}

// NewFeature composes the article catalog: a durable SQL tier over db, a
// seeded in-memory fallback tier, the service and the handlers.
func NewFeature(logger *core.Logger, db *core.Database, coreConfig *core.Config) *Feature {
	config := NewConfig(coreConfig)
	featureLogger := logger.ForFeature("articles")

	migrationMgr := migrations.NewManager(db, featureLogger)

	primary := store.NewSQLStore(db, featureLogger)
	var fallback store.Store
	if config.SeedFallback {
		fallback = store.NewSeededMemoryStore(time.Now().UTC())
	} else {
		fallback = store.NewMemoryStore()
	}
	tiered := store.NewTieredStore(primary, fallback, featureLogger)

	service := services.NewArticleService(tiered, featureLogger)
	apiHandlers := handlers.NewHandlers(featureLogger, service, coreConfig.Articles)

	return &Feature{
		BaseFeature:  core.NewBaseFeature("articles", "News Article Catalog", true, logger),
		config:       config,
		migrationMgr: migrationMgr,
		tieredStore:  tiered,
		service:      service,
		handlers:     apiHandlers,
	}
}

// Service exposes the article service for other components
func (f *Feature) Service() *services.ArticleService {
	return f.service
}

// LastTier reports which storage tier served the most recent request
func (f *Feature) LastTier() string {
	return f.tieredStore.LastTier()
}

// Init validates configuration and applies schema migrations. A migration
// failure is not fatal: the tiered store keeps the API serviceable from the
// fallback tier while the durable backend is unavailable.
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return err
	}

	if err := f.migrationMgr.Migrate(ctx); err != nil {
		f.Logger().Error("Article migrations failed, durable tier may be unavailable", "error", err)
	}

	return nil
}

// Routes returns the HTTP routes for the article catalog
func (f *Feature) Routes() []core.Route {
	paidOnly := gateway.RequirePaidRole(f.Logger())
	premiumDetail := paidOnly(http.HandlerFunc(f.handlers.GetPremiumArticle)).ServeHTTP

	return []core.Route{
		{Method: "GET", Path: "/api/articles", Handler: f.handlers.ListArticles},
		{Method: "GET", Path: "/api/articles/premium", Handler: f.handlers.ListPremiumArticles},
		{Method: "GET", Path: "/api/articles/free", Handler: f.handlers.ListFreeArticles},
		{Method: "GET", Path: "/api/articles/category/{category}", Handler: f.handlers.ListArticlesByCategory},
		{Method: "GET", Path: "/api/articles/search", Handler: f.handlers.SearchArticles},
		{Method: "GET", Path: "/api/articles/author/{author}", Handler: f.handlers.ListArticlesByAuthor},
		{Method: "GET", Path: "/api/articles/stats", Handler: f.handlers.GetStats},
		{Method: "GET", Path: "/api/articles/free/{id:[0-9]+}", Handler: f.handlers.GetFreeArticle},
		{Method: "GET", Path: "/api/articles/premium/{id:[0-9]+}", Handler: premiumDetail},
		{Method: "GET", Path: "/api/articles/{id:[0-9]+}", Handler: f.handlers.GetArticle},
		{Method: "POST", Path: "/api/articles", Handler: f.handlers.CreateArticle},
		{Method: "PUT", Path: "/api/articles/{id:[0-9]+}", Handler: f.handlers.UpdateArticle},
		{Method: "DELETE", Path: "/api/articles/{id:[0-9]+}", Handler: f.handlers.DeleteArticle},
		{Method: "GET", Path: "/api/articles/health", Handler: f.handlers.HealthCheck},
	}
}
