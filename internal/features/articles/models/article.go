package models

import (
	"fmt"
	"time"
	"unicode/utf8"
)

// Field length limits enforced on input, counted in characters to match the
// VARCHAR column definitions.
const (
	MaxTitleLength   = 500
	MaxMainImgLength = 1000
	MaxAuthorLength  = 100
)

// Article represents a news article in the catalog
type Article struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	MainImg    string    `json:"mainImg,omitempty"`
	Author     string    `json:"author"`
	CreateDate time.Time `json:"createDate"`
	UpdateDate time.Time `json:"updateDate"`
	Content    string    `json:"content"`
	Category   Category  `json:"category"`
	IsPremium  bool      `json:"isPremium"`
}

// ArticleInput carries every mutable article field. It is used both for
// creation and for updates; updates overlay all of these fields, so a field
// omitted from the payload overwrites the stored value with its zero value.
type ArticleInput struct {
	Title     string   `json:"title"`
	MainImg   string   `json:"mainImg"`
	Author    string   `json:"author"`
	Content   string   `json:"content"`
	Category  Category `json:"category"`
	IsPremium bool     `json:"isPremium"`
}

// Validate checks the input against the catalog constraints
func (in *ArticleInput) Validate() error {
	if in.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(in.Title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if in.Author == "" {
		return fmt.Errorf("author is required")
	}
	if utf8.RuneCountInString(in.Author) > MaxAuthorLength {
		return fmt.Errorf("author must be at most %d characters", MaxAuthorLength)
	}
	if utf8.RuneCountInString(in.MainImg) > MaxMainImgLength {
		return fmt.Errorf("mainImg must be at most %d characters", MaxMainImgLength)
	}
	if !in.Category.Valid() {
		return fmt.Errorf("invalid category: %s. Valid categories are: %s", string(in.Category), ValidSlugs())
	}
	return nil
}

// Apply overlays the input onto an existing article, preserving its id and
// createDate and refreshing updateDate.
func (in *ArticleInput) Apply(article *Article, now time.Time) {
	article.Title = in.Title
	article.MainImg = in.MainImg
	article.Author = in.Author
	article.Content = in.Content
	article.Category = in.Category
	article.IsPremium = in.IsPremium
	article.UpdateDate = now
}

// ArticleStats summarizes the catalog for the stats endpoint
type ArticleStats struct {
	TotalArticles   int            `json:"totalArticles"`
	PremiumArticles int            `json:"premiumArticles"`
	FreeArticles    int            `json:"freeArticles"`
	ByCategory      map[string]int `json:"byCategory"`
}
