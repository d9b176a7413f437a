package migrations

import (
	"civic-sights/internal/core"
)

// The DDL differs per driver (identity columns), so migration 001 has one
// variant for each supported backend.

var migration001SQLite = core.Migration{
	Version:     1,
	Name:        "create_article_tables",
	Description: "Create the news_articles table",
	UpSQL: `
		CREATE TABLE IF NOT EXISTS news_articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			main_img TEXT,
			author TEXT NOT NULL,
			create_date DATETIME NOT NULL,
			update_date DATETIME NOT NULL,
			content TEXT,
			category TEXT NOT NULL,
			is_premium BOOLEAN NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_news_articles_create_date ON news_articles(create_date DESC);
		CREATE INDEX IF NOT EXISTS idx_news_articles_category ON news_articles(category);
		CREATE INDEX IF NOT EXISTS idx_news_articles_is_premium ON news_articles(is_premium);
	`,
	DownSQL: `DROP TABLE IF EXISTS news_articles;`,
}

var migration001Postgres = core.Migration{
	Version:     1,
	Name:        "create_article_tables",
	Description: "Create the news_articles table",
	UpSQL: `
		CREATE TABLE IF NOT EXISTS news_articles (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			title VARCHAR(500) NOT NULL,
			main_img VARCHAR(1000),
			author VARCHAR(100) NOT NULL,
			create_date TIMESTAMPTZ NOT NULL,
			update_date TIMESTAMPTZ NOT NULL,
			content TEXT,
			category TEXT NOT NULL,
			is_premium BOOLEAN NOT NULL DEFAULT FALSE
		);

		CREATE INDEX IF NOT EXISTS idx_news_articles_create_date ON news_articles(create_date DESC);
		CREATE INDEX IF NOT EXISTS idx_news_articles_category ON news_articles(category);
		CREATE INDEX IF NOT EXISTS idx_news_articles_is_premium ON news_articles(is_premium);
	`,
	DownSQL: `DROP TABLE IF EXISTS news_articles;`,
}
