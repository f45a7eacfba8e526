package news_test

import (
	"testing"

	"newspage/internal/models"
	"newspage/internal/news"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	testCases := []struct {
		source   string
		expected models.Category
	}{
		{"TechCrunch AI", models.CategoryTech},
		{"techcrunch", models.CategoryTech},
		{"VentureBeat AI", models.CategoryTech},
		{"Business Insider", models.CategoryIndustry},
		{"AI Industry Weekly", models.CategoryIndustry},
		{"AI News", models.CategoryResearch},
		{"", models.CategoryResearch},
		{"Tech Business Daily", models.CategoryTech},
	}

	for _, tc := range testCases {
		t.Run(tc.source, func(t *testing.T) {
			require.Equal(t, tc.expected, news.Categorize(tc.source))
		})
	}
}

func TestCategorize_CaseInsensitive(t *testing.T) {
	require.Equal(t, news.Categorize("techcrunch"), news.Categorize("TechCrunch"))
	require.Equal(t, news.Categorize("BUSINESS"), news.Categorize("business"))
}

func TestCategorize_AlwaysKnown(t *testing.T) {
	for _, s := range []string{"", " ", "arXiv", "MIT Tech Review", "☃", "VENTURE", "industryX"} {
		assert.Contains(t, models.Categories, news.Categorize(s), "source %q", s)
	}
}

func TestCategorizeAll(t *testing.T) {
	in := []models.NewsItem{
		{Title: "a", Source: "TechCrunch"},
		{Title: "b", Source: "Business Wire", Category: models.CategoryTech},
	}

	out := news.CategorizeAll(in)

	require.Equal(t, models.CategoryTech, out[0].Category)
	require.Equal(t, models.CategoryIndustry, out[1].Category)
	require.Empty(t, in[0].Category, "input must not be modified")
}

func TestLabel(t *testing.T) {
	require.Equal(t, "Tech Updates", news.Label(models.CategoryTech))
	require.Equal(t, "Industry News", news.Label(models.CategoryIndustry))
	require.Equal(t, "Research Frontier", news.Label(models.CategoryResearch))
	require.Equal(t, "opinion", news.Label("opinion"))
}

func TestParseFilter(t *testing.T) {
	require.Equal(t, models.CategoryAll, news.ParseFilter(""))
	require.Equal(t, models.CategoryAll, news.ParseFilter("all"))
	require.Equal(t, models.CategoryTech, news.ParseFilter(" Tech "))
}
