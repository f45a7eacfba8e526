package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"newspage/internal/fetcher"
	"newspage/internal/logger"
	"newspage/internal/news"
	"newspage/internal/storage"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Crawl all feeds once and persist the result",
	RunE:  runCrawl,
}

func init() {
	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Init(cfg.Debug)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	repo, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage error: %w", err)
	}
	defer repo.Close()

	store := news.NewStore()
	crawler := fetcher.NewCrawler(fetcher.NewFetcher(cfg.FetchTimeoutDuration()), repo, store, fetcher.CrawlerOptions{
		Sources:  cfg.Sources,
		MaxItems: cfg.MaxItems,
		Pace:     crawlPace,
	})
	if err := crawler.Bootstrap(ctx); err != nil {
		return err
	}
	if err := crawler.CrawlAll(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d news items stored\n", store.Len())
	return nil
}
