// Command newspage crawls AI news feeds and serves the news page.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"newspage/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "newspage",
	Short: "AI news crawler and page server",
	Long:  "newspage collects AI news from RSS/Atom feeds, keeps the newest items and serves them as a filterable news page and a JSON API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("NEWSPAGE_CONFIG"), "Path to a JSON or YAML config file")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("config load error: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
