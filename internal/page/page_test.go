package page_test

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"
	"time"

	"newspage/internal/debounce"
	"newspage/internal/logger"
	"newspage/internal/models"
	"newspage/internal/news"
	"newspage/internal/page"
	"newspage/internal/source"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.Discard()
}

type fakeView struct {
	active   models.Category
	news     template.HTML
	errShown template.HTML
	alerts   []string
	resets   int
	menuOpen bool
	scrolled []bool
	targets  map[string]bool
	scrolls  []string
}

func (v *fakeView) SetActiveFilter(f models.Category) { v.active = f }
func (v *fakeView) ShowNews(f template.HTML)          { v.news = f }
func (v *fakeView) ShowError(f template.HTML)         { v.errShown = f }
func (v *fakeView) Alert(msg string)                  { v.alerts = append(v.alerts, msg) }
func (v *fakeView) ResetForm()                        { v.resets++ }
func (v *fakeView) SetMenuOpen(open bool)             { v.menuOpen = open }
func (v *fakeView) SetHeaderScrolled(s bool)          { v.scrolled = append(v.scrolled, s) }

func (v *fakeView) ScrollTo(id string) bool {
	v.scrolls = append(v.scrolls, id)
	return v.targets[id]
}

func (v *fakeView) titles(t *testing.T) []string {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(v.news)))
	require.NoError(t, err)
	var out []string
	doc.Find("article.news-card h3").Each(func(_ int, s *goquery.Selection) {
		out = append(out, s.Text())
	})
	return out
}

type brokenSource struct{}

func (brokenSource) Fetch(context.Context) ([]models.NewsItem, error) {
	return nil, errors.New("connection refused")
}

var fixedNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newController(t *testing.T, src source.Source) (*page.Controller, *fakeView, *debounce.FakeClock) {
	t.Helper()
	view := &fakeView{targets: map[string]bool{"news": true}}
	clock := debounce.NewFakeClock(fixedNow)
	loader := source.NewLoader(src, news.NewStore())
	c := page.New(view, loader, page.Options{
		Clock: clock,
		Now:   func() time.Time { return fixedNow },
	})
	return c, view, clock
}

func fourItems() source.Source {
	return source.NewStatic([]models.NewsItem{
		{Title: "T1", Source: "TechCrunch AI", PublishedAt: fixedNow},
		{Title: "B1", Source: "Business Weekly", PublishedAt: fixedNow},
		{Title: "T2", Source: "VentureBeat", PublishedAt: fixedNow},
		{Title: "R1", Source: "Some Lab Blog", PublishedAt: fixedNow},
	})
}

func TestController_FilterFlow(t *testing.T) {
	c, view, _ := newController(t, fourItems())
	require.NoError(t, c.Init(context.Background()))

	require.Equal(t, models.CategoryAll, view.active)
	require.Equal(t, []string{"T1", "B1", "T2", "R1"}, view.titles(t))

	c.ClickFilter(models.CategoryTech)
	require.Equal(t, models.CategoryTech, view.active)
	require.Equal(t, models.CategoryTech, c.ActiveFilter())
	require.Equal(t, []string{"T1", "T2"}, view.titles(t))

	c.ClickFilter(models.CategoryIndustry)
	require.Equal(t, []string{"B1"}, view.titles(t))

	c.ClickFilter(models.CategoryAll)
	require.Equal(t, []string{"T1", "B1", "T2", "R1"}, view.titles(t))
}

func TestController_EmptyCategory(t *testing.T) {
	c, view, _ := newController(t, source.NewStatic([]models.NewsItem{{Title: "T", Source: "tech"}}))
	require.NoError(t, c.Init(context.Background()))

	c.ClickFilter(models.CategoryResearch)
	require.Contains(t, string(view.news), "news-empty")
}

func TestController_LoadError(t *testing.T) {
	c, view, _ := newController(t, brokenSource{})

	err := c.Init(context.Background())
	require.ErrorIs(t, err, source.ErrLoad)
	require.Contains(t, string(view.errShown), `data-action="reload"`)
	require.Empty(t, view.news)
}

func TestController_Subscribe(t *testing.T) {
	c, view, _ := newController(t, fourItems())

	require.True(t, c.Submit("reader@example.com"))
	require.Equal(t, []string{page.SubscribeSuccessMessage}, view.alerts)
	require.Equal(t, 1, view.resets)

	require.False(t, c.Submit(""))
	require.Equal(t, page.SubscribeInvalidMessage, view.alerts[1])
	require.Equal(t, 1, view.resets, "empty submit must leave the form untouched")

	require.False(t, c.Submit("not-an-email"))
	require.Equal(t, 1, view.resets)
}

func TestController_Scroll(t *testing.T) {
	c, view, clock := newController(t, fourItems())

	c.Scroll(50)
	c.Scroll(150)
	c.Scroll(300)
	require.Empty(t, view.scrolled)

	clock.Advance(page.ScrollDebounce)
	require.Equal(t, []bool{true}, view.scrolled)
	require.True(t, c.HeaderScrolled())

	c.Scroll(400)
	clock.Advance(page.ScrollDebounce)
	require.Equal(t, []bool{true}, view.scrolled, "no update while staying past the threshold")

	c.Scroll(100)
	clock.Advance(page.ScrollDebounce)
	require.Equal(t, []bool{true, false}, view.scrolled)
	require.False(t, c.HeaderScrolled())
}

func TestController_ToggleNav(t *testing.T) {
	c, view, _ := newController(t, fourItems())

	c.ToggleNav()
	assert.True(t, view.menuOpen)
	assert.True(t, c.MenuOpen())

	c.ToggleNav()
	assert.False(t, view.menuOpen)
	assert.False(t, c.MenuOpen())
}

func TestController_ClickAnchor(t *testing.T) {
	c, view, _ := newController(t, fourItems())

	require.True(t, c.ClickAnchor("#news"))
	require.True(t, c.ClickAnchor("#missing"))
	require.Equal(t, []string{"news", "missing"}, view.scrolls)

	require.False(t, c.ClickAnchor("https://example.com/#news"))
	require.True(t, c.ClickAnchor("#"))
	require.Len(t, view.scrolls, 2)
}

func TestValidateSubscription(t *testing.T) {
	require.NoError(t, page.ValidateSubscription(page.Subscription{Email: "a@b.co"}))
	require.Error(t, page.ValidateSubscription(page.Subscription{Email: ""}))
	require.Error(t, page.ValidateSubscription(page.Subscription{Email: "a@"}))
}
