package source

import (
	"context"
	"time"

	"newspage/internal/models"
)

// Static serves a fixed list in literal order.
type Static struct {
	items []models.NewsItem
}

// NewStatic copies items into a Static source.
func NewStatic(items []models.NewsItem) *Static {
	cp := make([]models.NewsItem, len(items))
	copy(cp, items)
	return &Static{items: cp}
}

func (s *Static) Fetch(context.Context) ([]models.NewsItem, error) {
	cp := make([]models.NewsItem, len(s.items))
	copy(cp, s.items)
	return cp, nil
}

// Sample serves the bundled list, dated against the clock on every fetch so
// a long-running process keeps showing recent items.
type Sample struct {
	now func() time.Time
}

// NewSample creates a Sample; a nil now uses time.Now.
func NewSample(now func() time.Time) *Sample {
	if now == nil {
		now = time.Now
	}
	return &Sample{now: now}
}

func (s *Sample) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	return Builtin(s.now()).Fetch(ctx)
}

// Builtin returns the bundled sample list, dated relative to now.
func Builtin(now time.Time) *Static {
	day := 24 * time.Hour
	return NewStatic([]models.NewsItem{
		{
			ID:          "1",
			Title:       "Open-weight models close the gap on reasoning benchmarks",
			Description: "A new round of open releases matches proprietary systems on several math and coding evaluations.",
			Source:      "TechCrunch AI",
			PublishedAt: now.Add(-2 * time.Hour),
			Link:        "https://techcrunch.com/tag/artificial-intelligence/",
		},
		{
			ID:          "2",
			Title:       "Enterprises move AI pilots into production",
			Description: "Surveyed companies report that most generative AI projects started last year now run in production.",
			Source:      "Business Insider",
			PublishedAt: now.Add(-day - 3*time.Hour),
			Link:        "https://www.businessinsider.com/",
		},
		{
			ID:          "3",
			Title:       "Smaller vision-language models run on phones",
			Description: "Researchers show quantized multimodal models answering image questions fully on device.",
			Source:      "AI News",
			PublishedAt: now.Add(-3 * day),
			Link:        "https://artificialintelligence-news.com/",
		},
		{
			ID:          "4",
			Title:       "Funding for AI infrastructure startups keeps climbing",
			Description: "Investors continue to back inference and data tooling companies despite a cooler market.",
			Source:      "VentureBeat AI",
			PublishedAt: now.Add(-5 * day),
			Link:        "https://venturebeat.com/category/ai/",
		},
		{
			ID:          "5",
			Title:       "Chip makers report record demand from the AI industry",
			Description: "Data center revenue grew again as cloud providers expand accelerator fleets.",
			Source:      "Industry Week",
			PublishedAt: now.Add(-9 * day),
		},
		{
			ID:          "6",
			Title:       "New benchmark targets long-context retrieval",
			Description: "The dataset measures whether models can locate facts spread across very long documents.",
			PublishedAt: now.Add(-12 * day),
		},
	})
}
