package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/models"
	"civic-sights/internal/features/articles/services"
	"civic-sights/internal/features/articles/store"
)

// Handlers contains the article HTTP handlers
type Handlers struct {
	logger          *core.Logger
	service         *services.ArticleService
	defaultPageSize int
	maxPageSize     int
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, service *services.ArticleService, cfg core.ArticlesConfig) *Handlers {
	return &Handlers{
		logger:          logger,
		service:         service,
		defaultPageSize: cfg.DefaultPageSize,
		maxPageSize:     cfg.MaxPageSize,
	}
}

func (h *Handlers) pageRequest(r *http.Request) models.PageRequest {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	return models.PageRequest{Page: page, Size: size}.Normalize(h.defaultPageSize, h.maxPageSize)
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("Failed to encode response", "error", err)
	}
}

// writeStoreError maps store misses to an empty 404 and everything else to
// the shared error response.
func (h *Handlers) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	core.HandleError(w, err)
}

func articleID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

// ListArticles handles GET /api/articles
func (h *Handlers) ListArticles(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetAllArticles(r.Context(), h.pageRequest(r))
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// ListPremiumArticles handles GET /api/articles/premium
func (h *Handlers) ListPremiumArticles(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetPremiumArticles(r.Context(), h.pageRequest(r))
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// ListFreeArticles handles GET /api/articles/free
func (h *Handlers) ListFreeArticles(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetFreeArticles(r.Context(), h.pageRequest(r))
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// ListArticlesByCategory handles GET /api/articles/category/{category}
func (h *Handlers) ListArticlesByCategory(w http.ResponseWriter, r *http.Request) {
	category, err := models.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		core.HandleError(w, core.NewValidationError(err.Error(), err))
		return
	}

	page, err := h.service.GetArticlesByCategory(r.Context(), category, h.pageRequest(r))
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// SearchArticles handles GET /api/articles/search?q=
func (h *Handlers) SearchArticles(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("q")
	if keyword == "" {
		core.HandleError(w, core.NewValidationError("query parameter q is required", nil))
		return
	}

	page, err := h.service.SearchArticles(r.Context(), keyword, h.pageRequest(r))
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// ListArticlesByAuthor handles GET /api/articles/author/{author}
func (h *Handlers) ListArticlesByAuthor(w http.ResponseWriter, r *http.Request) {
	page, err := h.service.GetArticlesByAuthor(r.Context(), chi.URLParam(r, "author"), h.pageRequest(r))
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, page)
}

// GetStats handles GET /api/articles/stats
func (h *Handlers) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, stats)
}

// GetArticle handles GET /api/articles/{id}, tier-agnostic
func (h *Handlers) GetArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		core.HandleError(w, core.NewValidationError("invalid article id", err))
		return
	}

	article, err := h.service.GetArticleByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, article)
}

// GetFreeArticle handles GET /api/articles/free/{id}; premium ids miss
func (h *Handlers) GetFreeArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		core.HandleError(w, core.NewValidationError("invalid article id", err))
		return
	}

	article, err := h.service.GetFreeArticleByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, article)
}

// GetPremiumArticle handles GET /api/articles/premium/{id}; the paid-role
// gate runs before this handler, free ids miss here.
func (h *Handlers) GetPremiumArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		core.HandleError(w, core.NewValidationError("invalid article id", err))
		return
	}

	article, err := h.service.GetPremiumArticleByID(r.Context(), id)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, article)
}

// CreateArticle handles POST /api/articles
func (h *Handlers) CreateArticle(w http.ResponseWriter, r *http.Request) {
	var input models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		core.HandleError(w, core.NewValidationError("invalid request body: "+err.Error(), err))
		return
	}

	article, err := h.service.CreateArticle(r.Context(), &input)
	if err != nil {
		core.HandleError(w, err)
		return
	}
	h.writeJSON(w, http.StatusCreated, article)
}

// UpdateArticle handles PUT /api/articles/{id}
func (h *Handlers) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		core.HandleError(w, core.NewValidationError("invalid article id", err))
		return
	}

	var input models.ArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		core.HandleError(w, core.NewValidationError("invalid request body: "+err.Error(), err))
		return
	}

	article, err := h.service.UpdateArticle(r.Context(), id, &input)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, article)
}

// DeleteArticle handles DELETE /api/articles/{id}
func (h *Handlers) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := articleID(r)
	if err != nil {
		core.HandleError(w, core.NewValidationError("invalid article id", err))
		return
	}

	if err := h.service.DeleteArticle(r.Context(), id); err != nil {
		h.writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /api/articles/health; it bypasses the gateway filter
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok", "service": "news-article-api"}`))
}
