package server

import (
	"context"
	"encoding/json"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"newspage/internal/logger"
	"newspage/internal/metrics"
	"newspage/internal/middleware"
	"newspage/internal/models"
	"newspage/internal/news"
	"newspage/internal/page"
	"newspage/internal/source"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// Pinger is implemented by repositories that can report their health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	// PageSource feeds the rendered page; nil reads the crawler store.
	PageSource source.Source
	DateLayout string
	Now        func() time.Time
	Health     Pinger
}

// Server holds the dependencies of the HTTP handlers.
type Server struct {
	store  *news.Store
	src    source.Source
	opts   Options
	health Pinger
	log    *logger.Entry
}

// NewServer creates a Server over the crawler's news store.
func NewServer(store *news.Store, opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	src := opts.PageSource
	if src == nil {
		src = source.NewMemory(store)
	}
	return &Server{
		store:  store,
		src:    src,
		opts:   opts,
		health: opts.Health,
		log:    logger.Component("server"),
	}
}

// Routes registers every endpoint. staticDir, when it exists, is served
// under /assets/.
func (s *Server) Routes(staticDir string) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /api/news", middleware.CORS(http.HandlerFunc(s.GetNews)))
	mux.Handle("GET /api/news/{limit}", middleware.CORS(http.HandlerFunc(s.GetNews)))
	mux.HandleFunc("GET /news", s.GetFragment)
	mux.HandleFunc("POST /subscribe", s.Subscribe)
	mux.HandleFunc("GET /health", s.HealthCheck)
	mux.Handle("GET /metrics", metrics.Handler())
	mux.HandleFunc("GET /{$}", s.GetPage)

	static, _ := fs.Sub(staticFS, "static")
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(static))))
	if staticDir != "" {
		mux.Handle("GET /assets/", http.StripPrefix("/assets/", http.FileServer(http.Dir(staticDir))))
	}

	var handler http.Handler = mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.RequestIDMiddleware(handler)
	return handler
}

// HealthCheck answers 200 OK when storage is reachable, 503 otherwise.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health.Ping(r.Context()); err != nil {
			http.Error(w, "storage unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.Write([]byte("OK"))
}

// GetNews returns {"news": [...], "count": N}. With /api/news/{limit}
// only the newest limit items (1..100, default 10) are returned.
func (s *Server) GetNews(w http.ResponseWriter, r *http.Request) {
	items := s.store.Items()

	if raw := r.PathValue("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			limit = defaultLimit
		}
		if limit > maxLimit {
			limit = maxLimit
		}
		if len(items) > limit {
			items = items[:limit]
		}
	}

	writeJSON(w, http.StatusOK, models.NewsResponse{News: items, Count: len(items)})
}

func (s *Server) controller(view page.View) *page.Controller {
	loader := source.NewLoader(s.src, news.NewStore())
	return page.New(view, loader, page.Options{Now: s.opts.Now, DateLayout: s.opts.DateLayout})
}

// load runs the controller's initial load and applies the requested filter.
func (s *Server) load(r *http.Request, view *htmlView) (*page.Controller, error) {
	c := s.controller(view)
	if err := c.Init(r.Context()); err != nil {
		return c, err
	}
	if filter := news.ParseFilter(r.URL.Query().Get("category")); filter != models.CategoryAll {
		c.ClickFilter(filter)
	}
	return c, nil
}

// GetPage renders the whole news page.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	view := &htmlView{}
	c, err := s.load(r, view)
	if err != nil {
		s.log.WithError(err).Warn("Rendering page with load error")
	}
	if r.URL.Query().Get("menu") == "open" {
		c.ToggleNav()
	}
	s.writePage(w, http.StatusOK, view, "")
}

// GetFragment renders only the cards for ?category=, as the filter buttons
// request them.
func (s *Server) GetFragment(w http.ResponseWriter, r *http.Request) {
	view := &htmlView{}
	_, err := s.load(r, view)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(view.loadError))
		return
	}
	w.Write([]byte(view.news))
}

type subscribeResponse struct {
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// Subscribe validates the email and acknowledges it. JSON clients get
// {"ok", "message"}; form posts get the page back with the message.
func (s *Server) Subscribe(w http.ResponseWriter, r *http.Request) {
	email := r.FormValue("email")
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		var body page.Subscription
		if err := json.NewDecoder(r.Body).Decode(&body); err == nil {
			email = body.Email
		}
	}

	view := &htmlView{}
	c, err := s.load(r, view)
	if err != nil {
		s.log.WithError(err).Warn("Subscribe page rendered with load error")
	}
	ok := c.Submit(email)

	status := http.StatusOK
	if !ok {
		status = http.StatusUnprocessableEntity
	}

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		writeJSON(w, status, subscribeResponse{OK: ok, Message: view.lastAlert()})
		return
	}

	keep := email
	if view.reset {
		keep = ""
	}
	s.writePage(w, status, view, keep)
}

func (s *Server) writePage(w http.ResponseWriter, status int, view *htmlView, email string) {
	cards := view.news
	if view.loadError != "" {
		cards = view.loadError
	}
	active := view.active
	if active == "" {
		active = models.CategoryAll
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	err := pageTemplate.Execute(w, pageData{
		Filters:  filterButtons(active),
		Cards:    cards,
		Alert:    view.lastAlert(),
		Email:    email,
		MenuOpen: view.menuOpen,
	})
	if err != nil {
		s.log.WithError(err).Error("Failed to render page")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.WithError(err).Error("Failed to encode response")
	}
}
