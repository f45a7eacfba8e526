package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"newspage/internal/config"
	"newspage/internal/models"
)

const userAgent = "newspage/1.0"

// Fetcher downloads and parses RSS/Atom feeds.
type Fetcher struct {
	client *http.Client
	now    func() time.Time
}

// NewFetcher creates a Fetcher with the given HTTP timeout.
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

// FetchFeed downloads the feed of src and returns its entries as NewsItem.
func (f *Fetcher) FetchFeed(ctx context.Context, src config.SourceConfig) ([]models.NewsItem, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.Name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", src.Name, resp.Status)
	}

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", src.Name, err)
	}

	now := f.now()
	items := make([]models.NewsItem, 0, len(feed.Items))
	for _, entry := range feed.Items {
		if entry == nil {
			continue
		}
		title := strings.TrimSpace(entry.Title)
		link := strings.TrimSpace(entry.Link)

		published := now
		if entry.PublishedParsed != nil {
			published = *entry.PublishedParsed
		} else if entry.UpdatedParsed != nil {
			published = *entry.UpdatedParsed
		}

		items = append(items, models.NewsItem{
			ID:          models.NewsID(title, link),
			Title:       title,
			Link:        link,
			Description: plainText(entry.Description),
			Source:      src.Name,
			PublishedAt: published.UTC(),
		})
	}
	return items, nil
}

// plainText strips markup from feed descriptions and collapses whitespace.
func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return strings.Join(strings.Fields(s), " ")
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
