package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	portEnv        = "PORT"
	databaseURLEnv = "DATABASE_URL"
	debugEnv       = "DEBUG"

	DriverJSON     = "json"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds the crawl sources, storage and page settings.
type Config struct {
	Port         int            `json:"port" yaml:"port"`
	StaticDir    string         `json:"static_dir" yaml:"static_dir"`
	Sources      []SourceConfig `json:"sources" yaml:"sources"`
	PollInterval int            `json:"poll_interval" yaml:"poll_interval"`
	FetchTimeout int            `json:"fetch_timeout" yaml:"fetch_timeout"`
	MaxItems     int            `json:"max_items" yaml:"max_items"`
	Storage      StorageConfig  `json:"storage" yaml:"storage"`
	Page         PageConfig     `json:"page" yaml:"page"`
	Debug        bool           `json:"debug" yaml:"debug"`
}

// SourceConfig is one feed to crawl.
type SourceConfig struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

// StorageConfig selects where crawled news is persisted.
type StorageConfig struct {
	Driver string `json:"driver" yaml:"driver"`
	Path   string `json:"path" yaml:"path"`
	DSN    string `json:"dsn" yaml:"dsn"`
}

// PageConfig controls how the news page loads and renders.
type PageConfig struct {
	// NewsEndpoint, when set, makes the page load through the JSON API
	// instead of reading the crawler store directly.
	NewsEndpoint   string `json:"news_endpoint" yaml:"news_endpoint"`
	StaticFallback bool   `json:"static_fallback" yaml:"static_fallback"`
	DateLayout     string `json:"date_layout" yaml:"date_layout"`
}

// PollDuration returns PollInterval as a duration (minutes).
func (cfg *Config) PollDuration() time.Duration {
	return time.Duration(cfg.PollInterval) * time.Minute
}

// FetchTimeoutDuration returns FetchTimeout as a duration (seconds).
func (cfg *Config) FetchTimeoutDuration() time.Duration {
	return time.Duration(cfg.FetchTimeout) * time.Second
}

// Addr is the listen address.
func (cfg *Config) Addr() string {
	return ":" + strconv.Itoa(cfg.Port)
}

// Validate checks intervals, limits, source URLs and the storage driver.
func (cfg *Config) Validate() error {
	if cfg.PollInterval < 1 {
		return errors.New("poll interval must be ≥ 1 minute")
	}
	if cfg.MaxItems < 1 {
		return errors.New("max items must be positive")
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("invalid port: %d", cfg.Port)
	}
	for _, s := range cfg.Sources {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("source without name: %s", s.URL)
		}
		if _, err := url.ParseRequestURI(s.URL); err != nil {
			return fmt.Errorf("invalid source URL: %s", s.URL)
		}
	}
	switch cfg.Storage.Driver {
	case DriverJSON, DriverSQLite:
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage driver %s requires a path", cfg.Storage.Driver)
		}
	case DriverPostgres:
		if cfg.Storage.DSN == "" {
			return errors.New("storage driver postgres requires a dsn")
		}
	default:
		return fmt.Errorf("unknown storage driver: %q", cfg.Storage.Driver)
	}
	if cfg.Page.NewsEndpoint != "" {
		if _, err := url.ParseRequestURI(cfg.Page.NewsEndpoint); err != nil {
			return fmt.Errorf("invalid news endpoint: %s", cfg.Page.NewsEndpoint)
		}
	}
	return nil
}

// Default returns the built-in configuration: the three AI feeds, hourly
// crawl, newest 100 items in ai_news.json.
func Default() *Config {
	return &Config{
		Port:      80,
		StaticDir: "./web",
		Sources: []SourceConfig{
			{Name: "TechCrunch AI", URL: "https://techcrunch.com/tag/artificial-intelligence/feed/"},
			{Name: "VentureBeat AI", URL: "https://venturebeat.com/category/ai/feed/"},
			{Name: "AI News", URL: "https://artificialintelligence-news.com/feed/"},
		},
		PollInterval: 60,
		FetchTimeout: 10,
		MaxItems:     100,
		Storage:      StorageConfig{Driver: DriverJSON, Path: "ai_news.json"},
		Page:         PageConfig{StaticFallback: true},
	}
}

// LoadConfig reads path (JSON, or YAML for .yaml/.yml) over the defaults and
// applies environment overrides. An empty path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(raw, cfg)
		default:
			err = json.Unmarshal(raw, cfg)
		}
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) applyEnv() error {
	if v := os.Getenv(portEnv); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", portEnv, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv(databaseURLEnv); v != "" {
		cfg.Storage.Driver = DriverPostgres
		cfg.Storage.DSN = v
	}
	if os.Getenv(debugEnv) == "true" {
		cfg.Debug = true
	}
	return nil
}
