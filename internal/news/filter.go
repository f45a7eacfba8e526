package news

import "newspage/internal/models"

// Filter keeps the items matching filter, in input order. CategoryAll keeps
// everything; any other value keeps exact category matches only.
func Filter(items []models.NewsItem, filter models.Category) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if filter == models.CategoryAll || item.Category == filter {
			out = append(out, item)
		}
	}
	return out
}
