// Package source loads the news list shown on the page.
package source

import (
	"context"
	"errors"
	"fmt"
	"time"

	"newspage/internal/logger"
	"newspage/internal/metrics"
	"newspage/internal/models"
	"newspage/internal/news"
)

// ErrLoad wraps every failure to produce the news list.
var ErrLoad = errors.New("news unavailable")

// Source produces an ordered list of news items.
type Source interface {
	Fetch(ctx context.Context) ([]models.NewsItem, error)
}

// Loader fetches from a Source, categorizes and installs the result in a store.
type Loader struct {
	src   Source
	store *news.Store
	log   *logger.Entry
}

// NewLoader wires a Loader.
func NewLoader(src Source, store *news.Store) *Loader {
	return &Loader{src: src, store: store, log: logger.Component("loader")}
}

// Load replaces the store contents with a fresh, categorized list. On
// failure the store is left as it was and the error wraps ErrLoad.
func (l *Loader) Load(ctx context.Context) error {
	start := time.Now()
	items, err := l.src.Fetch(ctx)
	if err != nil {
		metrics.Loads.WithLabelValues("error").Inc()
		l.log.WithError(err).Error("Failed to load news")
		if errors.Is(err, ErrLoad) {
			return err
		}
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	l.store.Replace(news.CategorizeAll(items))
	metrics.Loads.WithLabelValues("ok").Inc()
	l.log.WithFields(logger.Fields{
		"items":    len(items),
		"duration": time.Since(start).String(),
	}).Debug("News loaded")
	return nil
}

// Store exposes the store the loader writes to.
func (l *Loader) Store() *news.Store {
	return l.store
}

// Fallback tries primary first and uses secondary when primary fails or
// returns nothing.
type Fallback struct {
	Primary   Source
	Secondary Source
}

func (f Fallback) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	items, err := f.Primary.Fetch(ctx)
	if err == nil && len(items) > 0 {
		return items, nil
	}
	if err != nil {
		logger.Component("loader").WithError(err).Warn("Primary source failed, using fallback")
	}
	return f.Secondary.Fetch(ctx)
}
