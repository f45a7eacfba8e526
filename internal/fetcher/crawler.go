package fetcher

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"newspage/internal/config"
	"newspage/internal/logger"
	"newspage/internal/metrics"
	"newspage/internal/models"
	"newspage/internal/news"
)

const maxParallelFeeds = 4

// Repository is where the crawler persists the merged list.
type Repository interface {
	Load(ctx context.Context) ([]models.NewsItem, error)
	Save(ctx context.Context, items []models.NewsItem) error
}

// FeedFetcher fetches one source.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, src config.SourceConfig) ([]models.NewsItem, error)
}

// Crawler merges all sources into one deduplicated, newest-first list.
type Crawler struct {
	fetcher  FeedFetcher
	sources  []config.SourceConfig
	repo     Repository
	store    *news.Store
	limiter  *rate.Limiter
	maxItems int

	mu    sync.Mutex
	items []models.NewsItem
}

// CrawlerOptions configures a Crawler.
type CrawlerOptions struct {
	Sources  []config.SourceConfig
	MaxItems int
	// Pace is the minimum delay between two feed requests.
	Pace time.Duration
}

// NewCrawler wires a Crawler.
func NewCrawler(f FeedFetcher, repo Repository, store *news.Store, opts CrawlerOptions) *Crawler {
	limit := rate.Inf
	if opts.Pace > 0 {
		limit = rate.Every(opts.Pace)
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = 100
	}
	return &Crawler{
		fetcher:  f,
		sources:  opts.Sources,
		repo:     repo,
		store:    store,
		limiter:  rate.NewLimiter(limit, 1),
		maxItems: opts.MaxItems,
	}
}

// Bootstrap loads the persisted list into the crawler and the store.
func (c *Crawler) Bootstrap(ctx context.Context) error {
	items, err := c.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load news: %w", err)
	}

	c.mu.Lock()
	c.items = items
	c.mu.Unlock()

	c.store.Replace(news.CategorizeAll(items))
	metrics.StoredItems.Set(float64(len(items)))
	logger.Component("crawler").WithField("items", len(items)).Info("Loaded stored news")
	return nil
}

// CrawlAll fetches every source, merges new items, keeps the newest
// maxItems, persists and publishes the result. A failing source is logged
// and skipped.
func (c *Crawler) CrawlAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	log := logger.Component("crawler")
	log.WithField("sources", len(c.sources)).Info("Starting crawl")

	results := make([][]models.NewsItem, len(c.sources))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelFeeds)

	for i, src := range c.sources {
		if err := c.limiter.Wait(ctx); err != nil {
			break
		}
		g.Go(func() error {
			entry := log.WithField("source", src.Name)
			entry.Debug("Fetching feed")

			items, err := c.fetcher.FetchFeed(gctx, src)
			if err != nil {
				metrics.FeedFetches.WithLabelValues(src.Name, "error").Inc()
				entry.Errorf("Failed to fetch feed: %v", err)
				return nil
			}
			metrics.FeedFetches.WithLabelValues(src.Name, "ok").Inc()
			entry.WithField("items_count", len(items)).Info("Feed fetched")
			results[i] = items
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}

	merged := Merge(c.items, results, c.maxItems)
	if err := c.repo.Save(ctx, merged); err != nil {
		return fmt.Errorf("save news: %w", err)
	}

	c.items = merged
	c.store.Replace(news.CategorizeAll(merged))
	metrics.StoredItems.Set(float64(len(merged)))
	log.WithField("items", len(merged)).Info("Crawl finished")
	return nil
}

// Merge appends unseen items (by ID) from batches to existing, sorts newest
// first and keeps at most limit items. existing is not modified.
func Merge(existing []models.NewsItem, batches [][]models.NewsItem, limit int) []models.NewsItem {
	seen := make(map[string]struct{}, len(existing))
	out := make([]models.NewsItem, 0, len(existing))
	for _, item := range existing {
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}

	for _, batch := range batches {
		for _, item := range batch {
			if _, ok := seen[item.ID]; ok {
				continue
			}
			seen[item.ID] = struct{}{}
			out = append(out, item)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
