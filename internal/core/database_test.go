package core

import "testing"

func TestRebind(t *testing.T) {
	logger := NewLogger()

	pg := NewDatabase(nil, DriverPostgres, logger)
	tests := []struct {
		query string
		want  string
	}{
		{
			"SELECT id FROM news_articles WHERE id = ?",
			"SELECT id FROM news_articles WHERE id = $1",
		},
		{
			"SELECT id FROM news_articles WHERE category = ? AND is_premium = ? LIMIT ? OFFSET ?",
			"SELECT id FROM news_articles WHERE category = $1 AND is_premium = $2 LIMIT $3 OFFSET $4",
		},
		{
			"SELECT COUNT(*) FROM news_articles",
			"SELECT COUNT(*) FROM news_articles",
		},
	}

	for _, tt := range tests {
		if got := pg.Rebind(tt.query); got != tt.want {
			t.Errorf("Rebind(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}

	// sqlite keeps ? placeholders untouched
	lite := NewDatabase(nil, DriverSQLite, logger)
	query := "SELECT id FROM news_articles WHERE id = ? AND is_premium = ?"
	if got := lite.Rebind(query); got != query {
		t.Errorf("Rebind(%q) for sqlite = %q, want it unchanged", query, got)
	}
}
