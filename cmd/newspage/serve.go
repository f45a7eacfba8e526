package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"newspage/internal/config"
	"newspage/internal/fetcher"
	"newspage/internal/logger"
	"newspage/internal/news"
	"newspage/internal/server"
	"newspage/internal/source"
	"newspage/internal/storage"
)

const crawlPace = time.Second

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Crawl feeds periodically and serve the news page",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config and PORT)")
	rootCmd.AddCommand(serveCmd)
}

func pageSource(cfg *config.Config, store *news.Store) source.Source {
	var src source.Source = source.NewMemory(store)
	if cfg.Page.NewsEndpoint != "" {
		src = source.NewAPI(nil, cfg.Page.NewsEndpoint)
	}
	if cfg.Page.StaticFallback {
		src = source.Fallback{Primary: src, Secondary: source.NewSample(time.Now)}
	}
	return src
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if servePort != 0 {
		cfg.Port = servePort
	}

	logger.Init(cfg.Debug)
	defer logger.Log.Info("Application stopped")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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
		logger.Log.Errorf("Failed to load stored news: %v", err)
	}

	go fetcher.StartPolling(ctx, crawler, cfg.PollDuration())

	opts := server.Options{
		PageSource: pageSource(cfg, store),
		DateLayout: cfg.Page.DateLayout,
	}
	if p, ok := repo.(server.Pinger); ok {
		opts.Health = p
	}
	srv := server.NewServer(store, opts)

	httpServer := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           srv.Routes(cfg.StaticDir),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Log.Infof("Starting HTTP server on %s", cfg.Addr())
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Log.Info("Shutting down...")
	cancel()
	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(ctxShutdown); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}
	return nil
}
