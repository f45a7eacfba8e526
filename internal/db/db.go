package db

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"newspage/internal/models"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS news (
	id TEXT PRIMARY KEY,
	position INTEGER NOT NULL,
	title TEXT NOT NULL,
	description TEXT,
	source TEXT,
	link TEXT,
	published_at TIMESTAMP WITH TIME ZONE NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_news_position ON news(position);
`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Database wraps a PostgreSQL connection pool.
type Database struct {
	Pool *pgxpool.Pool
}

// NewDB opens a pool for connString and prepares the schema.
func NewDB(ctx context.Context, connString string) (*Database, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Database{Pool: pool}, nil
}

// Close closes the pool.
func (db *Database) Close() error {
	db.Pool.Close()
	return nil
}

// Ping checks the connection.
func (db *Database) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// Load returns the stored list in saved order.
func (db *Database) Load(ctx context.Context) ([]models.NewsItem, error) {
	query, args, err := psql.
		Select("id", "title", "description", "source", "link", "published_at").
		From("news").
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := db.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query news: %w", err)
	}
	defer rows.Close()

	items := []models.NewsItem{}
	for rows.Next() {
		var (
			item                      models.NewsItem
			description, source, link *string
			published                 time.Time
		)
		if err := rows.Scan(&item.ID, &item.Title, &description, &source, &link, &published); err != nil {
			return nil, fmt.Errorf("scan news: %w", err)
		}
		item.Description = deref(description)
		item.Source = deref(source)
		item.Link = deref(link)
		item.PublishedAt = published.UTC()
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return items, nil
}

// Save replaces the stored list with items in one transaction.
// When an id repeats, the later item wins.
func (db *Database) Save(ctx context.Context, items []models.NewsItem) error {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM news`); err != nil {
		return fmt.Errorf("clear news: %w", err)
	}

	for i, item := range items {
		query, args, err := psql.
			Insert("news").
			Columns("id", "position", "title", "description", "source", "link", "published_at").
			Values(rowID(item, i), i, item.Title, item.Description, item.Source, item.Link, item.PublishedAt).
			Suffix(`ON CONFLICT (id) DO UPDATE SET position = EXCLUDED.position, title = EXCLUDED.title,
				description = EXCLUDED.description, source = EXCLUDED.source, link = EXCLUDED.link,
				published_at = EXCLUDED.published_at`).
			ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return fmt.Errorf("insert news %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// rowID falls back to the crawler identity for items loaded without an id.
func rowID(item models.NewsItem, position int) string {
	if item.ID != "" {
		return item.ID
	}
	if item.Title == "" && item.Link == "" {
		return fmt.Sprintf("position-%d", position)
	}
	return models.NewsID(item.Title, item.Link)
}
