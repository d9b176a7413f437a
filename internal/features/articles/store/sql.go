package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"civic-sights/internal/core"
	"civic-sights/internal/features/articles/models"
)

// SQLStore is the durable tier, backed by the news_articles table
type SQLStore struct {
	db     *core.Database
	logger *core.Logger
}

// NewSQLStore creates the durable article store
func NewSQLStore(db *core.Database, logger *core.Logger) *SQLStore {
	return &SQLStore{
		db:     db,
		logger: logger,
	}
}

const articleColumns = "id, title, main_img, author, create_date, update_date, content, category, is_premium"

func scanArticle(row interface{ Scan(...interface{}) error }) (*models.Article, error) {
	var article models.Article
	var mainImg sql.NullString

	err := row.Scan(
		&article.ID,
		&article.Title,
		&mainImg,
		&article.Author,
		&article.CreateDate,
		&article.UpdateDate,
		&article.Content,
		&article.Category,
		&article.IsPremium,
	)
	if err != nil {
		return nil, err
	}

	if mainImg.Valid {
		article.MainImg = mainImg.String
	}
	return &article, nil
}

// Get retrieves an article by id regardless of tier
func (s *SQLStore) Get(ctx context.Context, id int64) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM news_articles WHERE id = ?", articleColumns)

	var article *models.Article
	err := s.db.QueryRowWithTimeout(ctx, query, func(row *sql.Row) error {
		var scanErr error
		article, scanErr = scanArticle(row)
		return scanErr
	}, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	return article, nil
}

// GetByTier retrieves an article only if its premium flag matches
func (s *SQLStore) GetByTier(ctx context.Context, id int64, premium bool) (*models.Article, error) {
	query := fmt.Sprintf("SELECT %s FROM news_articles WHERE id = ? AND is_premium = ?", articleColumns)

	var article *models.Article
	err := s.db.QueryRowWithTimeout(ctx, query, func(row *sql.Row) error {
		var scanErr error
		article, scanErr = scanArticle(row)
		return scanErr
	}, id, premium)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get article %d: %w", id, err)
	}
	return article, nil
}

func buildWhere(filter Filter) (string, []interface{}) {
	clauses := []string{}
	args := []interface{}{}

	if filter.Category != nil {
		clauses = append(clauses, "category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Premium != nil {
		clauses = append(clauses, "is_premium = ?")
		args = append(args, *filter.Premium)
	}
	if filter.Author != "" {
		clauses = append(clauses, "LOWER(author) LIKE ?")
		args = append(args, "%"+strings.ToLower(filter.Author)+"%")
	}
	if filter.Keyword != "" {
		clauses = append(clauses, "(LOWER(title) LIKE ? OR LOWER(content) LIKE ?)")
		keyword := "%" + strings.ToLower(filter.Keyword) + "%"
		args = append(args, keyword, keyword)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

// List returns a page of articles matching the filter, newest first
func (s *SQLStore) List(ctx context.Context, filter Filter, req models.PageRequest) (*models.Page, error) {
	where, args := buildWhere(filter)

	var total int
	countQuery := "SELECT COUNT(*) FROM news_articles" + where
	err := s.db.QueryRowWithTimeout(ctx, countQuery, func(row *sql.Row) error {
		return row.Scan(&total)
	}, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles: %w", err)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM news_articles%s ORDER BY create_date DESC, id DESC LIMIT ? OFFSET ?",
		articleColumns, where,
	)
	args = append(args, req.Size, req.Offset())

	rows, err := s.db.QueryWithTimeout(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list articles: %w", err)
	}
	defer rows.Close()

	articles := []models.Article{}
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, *article)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read articles: %w", err)
	}

	return models.NewPage(articles, req, total), nil
}

// Create stores a new article, assigning id and both timestamps
func (s *SQLStore) Create(ctx context.Context, input *models.ArticleInput) (*models.Article, error) {
	now := time.Now().UTC()

	query := `
		INSERT INTO news_articles (title, main_img, author, create_date, update_date, content, category, is_premium)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	var id int64
	err := s.db.QueryRowWithTimeout(ctx, query, func(row *sql.Row) error {
		return row.Scan(&id)
	},
		input.Title,
		input.MainImg,
		input.Author,
		now,
		now,
		input.Content,
		string(input.Category),
		input.IsPremium,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create article: %w", err)
	}

	article := &models.Article{
		ID:         id,
		CreateDate: now,
	}
	input.Apply(article, now)

	s.logger.Info("Created article", "id", id, "title", input.Title)
	return article, nil
}

// Update overlays every mutable field of an existing article
func (s *SQLStore) Update(ctx context.Context, id int64, input *models.ArticleInput) (*models.Article, error) {
	article, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	input.Apply(article, now)

	query := `
		UPDATE news_articles
		SET title = ?, main_img = ?, author = ?, update_date = ?, content = ?, category = ?, is_premium = ?
		WHERE id = ?
	`

	_, err = s.db.ExecWithTimeout(ctx, query,
		article.Title,
		article.MainImg,
		article.Author,
		article.UpdateDate,
		article.Content,
		string(article.Category),
		article.IsPremium,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update article %d: %w", id, err)
	}

	s.logger.Info("Updated article", "id", id)
	return article, nil
}

// Delete removes an article by id
func (s *SQLStore) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecWithTimeout(ctx, "DELETE FROM news_articles WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete article %d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	s.logger.Info("Deleted article", "id", id)
	return nil
}

// CountByPremium counts articles with the given premium flag
func (s *SQLStore) CountByPremium(ctx context.Context, premium bool) (int, error) {
	var count int
	err := s.db.QueryRowWithTimeout(ctx, "SELECT COUNT(*) FROM news_articles WHERE is_premium = ?", func(row *sql.Row) error {
		return row.Scan(&count)
	}, premium)
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}

// CountByCategory counts articles in a category
func (s *SQLStore) CountByCategory(ctx context.Context, category models.Category) (int, error) {
	var count int
	err := s.db.QueryRowWithTimeout(ctx, "SELECT COUNT(*) FROM news_articles WHERE category = ?", func(row *sql.Row) error {
		return row.Scan(&count)
	}, string(category))
	if err != nil {
		return 0, fmt.Errorf("failed to count articles: %w", err)
	}
	return count, nil
}
