package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Category is one of the three fixed news sections.
type Category string

const (
	CategoryTech     Category = "tech"
	CategoryIndustry Category = "industry"
	CategoryResearch Category = "research"
)

// CategoryAll is the filter value that matches every item. It is never
// assigned to an item.
const CategoryAll Category = "all"

// Categories lists the item categories in display order.
var Categories = []Category{CategoryTech, CategoryIndustry, CategoryResearch}

// NewsItem is one renderable news record.
// Category is derived from Source on load and never read from input.
// ID is kept as a string; numeric ids are accepted on input.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	Category    Category  `json:"category,omitempty"`
}

// publishedLayouts are tried in order when decoding published_at.
var publishedLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts a numeric or string id and a published_at given as
// an RFC 3339 timestamp or a plain date. A missing or null field leaves the
// zero value.
func (n *NewsItem) UnmarshalJSON(data []byte) error {
	type plain NewsItem
	aux := struct {
		*plain
		ID          json.RawMessage `json:"id"`
		PublishedAt json.RawMessage `json:"published_at"`
	}{plain: (*plain)(n)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	id, err := decodeID(aux.ID)
	if err != nil {
		return err
	}
	published, err := decodePublished(aux.PublishedAt)
	if err != nil {
		return err
	}
	n.ID = id
	n.PublishedAt = published
	return nil
}

func isNull(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}

func decodeID(raw json.RawMessage) (string, error) {
	if isNull(raw) {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var num json.Number
	if err := json.Unmarshal(raw, &num); err != nil {
		return "", fmt.Errorf("id: %w", err)
	}
	return num.String(), nil
}

func decodePublished(raw json.RawMessage) (time.Time, error) {
	if isNull(raw) {
		return time.Time{}, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return time.Time{}, fmt.Errorf("published_at: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range publishedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("published_at: unrecognized time %q", s)
}

// NewsID builds the crawler identity of an item from its title and link.
func NewsID(title, link string) string {
	return fmt.Sprintf("%s-%s", strings.ReplaceAll(title, " ", "-"), link)
}

// NewsResponse is the payload of GET /api/news.
type NewsResponse struct {
	News  []NewsItem `json:"news"`
	Count int        `json:"count"`
}
