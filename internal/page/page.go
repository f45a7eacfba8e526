// Package page wires user interactions on the news page to the news
// pipeline. UI handles are injected through View so the controller runs
// without a live document.
package page

import (
	"context"
	"html/template"
	"strings"
	"sync"
	"time"

	"newspage/internal/debounce"
	"newspage/internal/logger"
	"newspage/internal/metrics"
	"newspage/internal/models"
	"newspage/internal/news"
	"newspage/internal/source"
)

const (
	// ScrollThreshold is the vertical offset past which the header switches style.
	ScrollThreshold = 100
	// ScrollDebounce is the quiet interval before the scroll handler runs.
	ScrollDebounce = 10 * time.Millisecond

	SubscribeSuccessMessage = "Subscribed! We will send you the latest AI news regularly."
	SubscribeInvalidMessage = "Please enter a valid email address"
)

// View is the set of UI handles the controller drives.
type View interface {
	SetActiveFilter(filter models.Category)
	ShowNews(fragment template.HTML)
	ShowError(fragment template.HTML)
	Alert(message string)
	ResetForm()
	SetMenuOpen(open bool)
	SetHeaderScrolled(scrolled bool)
	// ScrollTo smoothly scrolls to the element with the given id and
	// reports whether it exists.
	ScrollTo(id string) bool
}

// Options configures a Controller.
type Options struct {
	Clock      debounce.Clock
	Now        func() time.Time
	DateLayout string
}

// Controller holds the page state: the loaded list, active filter, menu and
// header flags.
type Controller struct {
	view     View
	loader   *source.Loader
	renderer *news.Renderer
	now      func() time.Time
	scroll   func(int)
	log      *logger.Entry

	filter   models.Category
	menuOpen bool

	// scroll updates land on the debounce timer goroutine
	mu       sync.Mutex
	scrolled bool
}

// New creates a Controller.
func New(view View, loader *source.Loader, opts Options) *Controller {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	c := &Controller{
		view:     view,
		loader:   loader,
		renderer: news.NewRenderer(opts.DateLayout),
		now:      opts.Now,
		filter:   models.CategoryAll,
		log:      logger.Component("page"),
	}
	c.scroll = debounce.Wrap(debounce.New(ScrollDebounce, opts.Clock), c.applyScroll)
	return c
}

// Init loads the news and renders every category.
func (c *Controller) Init(ctx context.Context) error {
	return c.Reload(ctx)
}

// Reload fetches the list again. On failure the inline error with its reload
// action is shown and the error returned.
func (c *Controller) Reload(ctx context.Context) error {
	if err := c.loader.Load(ctx); err != nil {
		fragment, rerr := c.renderer.ErrorFragment()
		if rerr != nil {
			c.log.WithError(rerr).Error("Failed to render error message")
		}
		c.view.ShowError(fragment)
		return err
	}
	c.filter = models.CategoryAll
	c.view.SetActiveFilter(c.filter)
	c.render()
	return nil
}

// ClickFilter makes filter the only active button and re-renders.
func (c *Controller) ClickFilter(filter models.Category) {
	c.filter = filter
	c.view.SetActiveFilter(filter)
	c.render()
}

// ActiveFilter reports the selected filter.
func (c *Controller) ActiveFilter() models.Category {
	return c.filter
}

func (c *Controller) render() {
	fragment, err := c.renderer.Fragment(c.loader.Store().Items(), c.filter, c.now())
	if err != nil {
		c.log.WithError(err).Error("Failed to render news")
		return
	}
	metrics.Renders.WithLabelValues(filterLabel(c.filter)).Inc()
	c.view.ShowNews(fragment)
}

// Submit handles the subscribe form. Nothing is sent anywhere.
func (c *Controller) Submit(email string) bool {
	email = strings.TrimSpace(email)
	if err := ValidateSubscription(Subscription{Email: email}); err != nil {
		metrics.Subscriptions.WithLabelValues("invalid").Inc()
		c.view.Alert(SubscribeInvalidMessage)
		return false
	}
	metrics.Subscriptions.WithLabelValues("ok").Inc()
	c.log.Info("Subscription received")
	c.view.Alert(SubscribeSuccessMessage)
	c.view.ResetForm()
	return true
}

// Scroll records a scroll event; the header update runs after the debounce
// interval.
func (c *Controller) Scroll(offsetY int) {
	c.scroll(offsetY)
}

func (c *Controller) applyScroll(offsetY int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	scrolled := offsetY > ScrollThreshold
	if scrolled == c.scrolled {
		return
	}
	c.scrolled = scrolled
	c.view.SetHeaderScrolled(scrolled)
}

// HeaderScrolled reports the current header style.
func (c *Controller) HeaderScrolled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scrolled
}

// ToggleNav flips the mobile menu.
func (c *Controller) ToggleNav() {
	c.menuOpen = !c.menuOpen
	c.view.SetMenuOpen(c.menuOpen)
}

// MenuOpen reports whether the mobile menu is open.
func (c *Controller) MenuOpen() bool {
	return c.menuOpen
}

// ClickAnchor handles an in-page link. It reports whether default navigation
// was prevented, which is the case for every "#..." href.
func (c *Controller) ClickAnchor(href string) bool {
	id, ok := strings.CutPrefix(href, "#")
	if !ok {
		return false
	}
	if id != "" && !c.view.ScrollTo(id) {
		c.log.WithField("target", href).Debug("Anchor target not found")
	}
	return true
}

func filterLabel(f models.Category) string {
	if f == models.CategoryAll {
		return string(f)
	}
	for _, c := range models.Categories {
		if f == c {
			return string(f)
		}
	}
	return "unknown"
}
