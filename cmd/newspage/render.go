package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"newspage/internal/logger"
	"newspage/internal/news"
	"newspage/internal/source"
	"newspage/internal/storage"
)

var (
	renderCategory string
	renderStatic   bool
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the news cards for a category",
	RunE:  runRender,
}

func init() {
	renderCmd.Flags().StringVar(&renderCategory, "category", "all", "Category to show: all, tech, industry or research")
	renderCmd.Flags().BoolVar(&renderStatic, "static", false, "Use the bundled sample news instead of stored news")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.Discard()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	now := time.Now()

	var src source.Source = source.Builtin(now)
	if !renderStatic {
		repo, err := storage.Open(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("storage error: %w", err)
		}
		defer repo.Close()
		src = source.NewRepository(repo)
	}

	store := news.NewStore()
	renderer := news.NewRenderer(cfg.Page.DateLayout)
	out := cmd.OutOrStdout()

	if err := source.NewLoader(src, store).Load(ctx); err != nil {
		if rerr := renderer.RenderError(out); rerr != nil {
			return rerr
		}
		return err
	}
	return renderer.Render(out, store.Items(), news.ParseFilter(renderCategory), now)
}
