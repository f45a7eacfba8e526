package db

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"newspage/internal/models"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS news (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	source TEXT,
	link TEXT,
	published_at DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_news_position ON news(position);
`

// SQLite stores the news list in a SQLite file.
type SQLite struct {
	db *sql.DB
	mu sync.RWMutex
}

// OpenSQLite opens (and creates if needed) the database at path.
// ":memory:" gives each call its own private in-memory database.
func OpenSQLite(path string) (*SQLite, error) {
	connStr := path
	if path == ":memory:" {
		connStr = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Load returns the stored list in saved order.
func (s *SQLite) Load(ctx context.Context) ([]models.NewsItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query, args, err := sq.
		Select("id", "title", "description", "source", "link", "published_at").
		From("news").
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	items := []models.NewsItem{}
	for rows.Next() {
		var (
			item                      models.NewsItem
			description, source, link sql.NullString
			published                 time.Time
		)
		if err := rows.Scan(&item.ID, &item.Title, &description, &source, &link, &published); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		item.Description = description.String
		item.Source = source.String
		item.Link = link.String
		item.PublishedAt = published.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return items, nil
}

// Save replaces the stored list with items in one transaction.
func (s *SQLite) Save(ctx context.Context, items []models.NewsItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM news`); err != nil {
		return fmt.Errorf("clear news: %w", err)
	}

	for i, item := range items {
		query, args, err := sq.
			Insert("news").
			Options("OR REPLACE").
			Columns("id", "position", "title", "description", "source", "link", "published_at").
			Values(rowID(item, i), i, item.Title, item.Description, item.Source, item.Link, item.PublishedAt.UTC()).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert news %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
