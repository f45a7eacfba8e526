package fetcher

import (
	"context"
	"time"

	"newspage/internal/logger"
)

// StartPolling crawls immediately and then on every tick until ctx is done.
func StartPolling(ctx context.Context, crawler *Crawler, interval time.Duration) {
	log := logger.Log.WithFields(logger.Fields{
		"service":  "poller",
		"interval": interval.String(),
	})

	crawl := func() {
		if err := crawler.CrawlAll(ctx); err != nil && ctx.Err() == nil {
			log.Errorf("Crawl failed: %v", err)
		}
	}

	crawl()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			log.Info("Starting new polling cycle")
			crawl()

		case <-ctx.Done():
			log.Info("Stopping poller by context")
			return
		}
	}
}
