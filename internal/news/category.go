package news

import (
	"strings"

	"newspage/internal/models"
)

var categoryLabels = map[models.Category]string{
	models.CategoryTech:     "Tech Updates",
	models.CategoryIndustry: "Industry News",
	models.CategoryResearch: "Research Frontier",
}

// Categorize maps a source name to its category. Matching is a
// case-insensitive substring test; anything unrecognized, including an
// empty source, is research.
func Categorize(source string) models.Category {
	s := strings.ToLower(source)
	switch {
	case strings.Contains(s, "tech"), strings.Contains(s, "venture"):
		return models.CategoryTech
	case strings.Contains(s, "industry"), strings.Contains(s, "business"):
		return models.CategoryIndustry
	default:
		return models.CategoryResearch
	}
}

// CategorizeAll returns a copy of items with Category set on every element.
func CategorizeAll(items []models.NewsItem) []models.NewsItem {
	out := make([]models.NewsItem, len(items))
	for i, item := range items {
		item.Category = Categorize(item.Source)
		out[i] = item
	}
	return out
}

// Label returns the display name of a category. Unknown values are returned as is.
func Label(c models.Category) string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return string(c)
}

// ParseFilter turns a query value into a filter. Empty means all.
func ParseFilter(v string) models.Category {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return models.CategoryAll
	}
	return models.Category(v)
}
