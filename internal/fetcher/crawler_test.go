package fetcher_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"newspage/internal/config"
	"newspage/internal/fetcher"
	"newspage/internal/models"
	"newspage/internal/news"
	"newspage/internal/storage"

	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	mu    sync.Mutex
	feeds map[string][]models.NewsItem
	fail  map[string]bool
	calls int
}

func (s *stubFetcher) FetchFeed(_ context.Context, src config.SourceConfig) ([]models.NewsItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.fail[src.Name] {
		return nil, errors.New("unreachable")
	}
	return s.feeds[src.Name], nil
}

var base = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func item(title, source string, age time.Duration) models.NewsItem {
	link := "http://example.com/" + title
	return models.NewsItem{
		ID:          models.NewsID(title, link),
		Title:       title,
		Link:        link,
		Source:      source,
		PublishedAt: base.Add(-age),
	}
}

func TestMerge(t *testing.T) {
	existing := []models.NewsItem{item("old", "AI News", 48*time.Hour)}
	batches := [][]models.NewsItem{
		{item("new", "TechCrunch AI", time.Hour), item("old", "AI News", 48*time.Hour)},
		nil,
		{item("mid", "VentureBeat AI", 24*time.Hour), item("new", "TechCrunch AI", time.Hour)},
	}

	merged := fetcher.Merge(existing, batches, 100)
	var titles []string
	for _, it := range merged {
		titles = append(titles, it.Title)
	}
	require.Equal(t, []string{"new", "mid", "old"}, titles)
	require.Len(t, existing, 1)

	require.Len(t, fetcher.Merge(existing, batches, 2), 2)
}

func TestMerge_Cap(t *testing.T) {
	var batch []models.NewsItem
	for i := 0; i < 150; i++ {
		batch = append(batch, item(fmt.Sprintf("n%d", i), "AI News", time.Duration(i)*time.Minute))
	}

	merged := fetcher.Merge(nil, [][]models.NewsItem{batch}, 100)
	require.Len(t, merged, 100)
	require.Equal(t, "n0", merged[0].Title)
	require.Equal(t, "n99", merged[99].Title)
}

func TestCrawler_CrawlAll(t *testing.T) {
	ctx := context.Background()
	repo := storage.NewJSONFile(filepath.Join(t.TempDir(), "ai_news.json"))
	store := news.NewStore()

	stub := &stubFetcher{
		feeds: map[string][]models.NewsItem{
			"TechCrunch AI":  {item("a", "TechCrunch AI", time.Hour)},
			"VentureBeat AI": {item("b", "VentureBeat AI", 2*time.Hour)},
		},
		fail: map[string]bool{"AI News": true},
	}
	crawler := fetcher.NewCrawler(stub, repo, store, fetcher.CrawlerOptions{
		Sources:  config.Default().Sources,
		MaxItems: 10,
	})

	require.NoError(t, crawler.Bootstrap(ctx))
	require.Zero(t, store.Len())

	require.NoError(t, crawler.CrawlAll(ctx))
	require.Equal(t, 3, stub.calls)

	items := store.Items()
	require.Len(t, items, 2)
	require.Equal(t, "a", items[0].Title)
	require.Equal(t, models.CategoryTech, items[0].Category)

	saved, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, saved, 2)
	require.Empty(t, saved[0].Category, "category is derived, not persisted")

	// a second crawl adds nothing new
	require.NoError(t, crawler.CrawlAll(ctx))
	require.Equal(t, 2, store.Len())

	// a fresh crawler picks up what was persisted
	other := news.NewStore()
	restarted := fetcher.NewCrawler(stub, repo, other, fetcher.CrawlerOptions{Sources: config.Default().Sources})
	require.NoError(t, restarted.Bootstrap(ctx))
	require.Equal(t, 2, other.Len())
}

func TestCrawler_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	repo := storage.NewJSONFile(filepath.Join(t.TempDir(), "ai_news.json"))
	crawler := fetcher.NewCrawler(&stubFetcher{}, repo, news.NewStore(), fetcher.CrawlerOptions{
		Sources: config.Default().Sources,
		Pace:    time.Hour,
	})

	require.ErrorIs(t, crawler.CrawlAll(ctx), context.Canceled)
}

func TestStartPolling_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	repo := storage.NewJSONFile(filepath.Join(t.TempDir(), "ai_news.json"))
	stub := &stubFetcher{feeds: map[string][]models.NewsItem{"TechCrunch AI": {item("a", "TechCrunch AI", 0)}}}
	store := news.NewStore()
	crawler := fetcher.NewCrawler(stub, repo, store, fetcher.CrawlerOptions{Sources: config.Default().Sources})

	done := make(chan struct{})
	go func() {
		fetcher.StartPolling(ctx, crawler, time.Hour)
		close(done)
	}()

	require.Eventually(t, func() bool { return store.Len() == 1 }, time.Second, 10*time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop")
	}
}
