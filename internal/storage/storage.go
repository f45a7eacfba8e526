// Package storage persists the crawled news list.
package storage

import (
	"context"
	"fmt"

	"newspage/internal/config"
	"newspage/internal/db"
	"newspage/internal/models"
)

// Repository loads and saves the whole news list.
type Repository interface {
	Load(ctx context.Context) ([]models.NewsItem, error)
	Save(ctx context.Context, items []models.NewsItem) error
	Close() error
}

var (
	_ Repository = (*JSONFile)(nil)
	_ Repository = (*db.SQLite)(nil)
	_ Repository = (*db.Database)(nil)
)

// Open builds the repository selected by cfg.Driver.
func Open(ctx context.Context, cfg config.StorageConfig) (Repository, error) {
	switch cfg.Driver {
	case config.DriverJSON:
		return NewJSONFile(cfg.Path), nil
	case config.DriverSQLite:
		repo, err := db.OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return repo, nil
	case config.DriverPostgres:
		repo, err := db.NewDB(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.Driver)
	}
}
