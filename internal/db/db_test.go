package db_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"newspage/internal/db"
	"newspage/internal/models"

	"github.com/stretchr/testify/require"
)

func sampleNews() []models.NewsItem {
	base := time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	return []models.NewsItem{
		{ID: "b", Title: "Second", Source: "TechCrunch AI", Link: "http://b", PublishedAt: base},
		{ID: "a", Title: "First", Description: "desc", PublishedAt: base.Add(-time.Hour)},
		{Title: "No id", Link: "http://c", PublishedAt: base.Add(-2 * time.Hour)},
	}
}

func TestSQLite_SaveLoad(t *testing.T) {
	store, err := db.OpenSQLite(filepath.Join(t.TempDir(), "news.db"))
	require.NoError(t, err)
	defer store.Close()

	ctx := context.Background()

	items, err := store.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	require.NoError(t, store.Save(ctx, sampleNews()))

	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
	require.Equal(t, "Second", items[0].Title)
	require.Equal(t, "TechCrunch AI", items[0].Source)
	require.Equal(t, "desc", items[1].Description)
	require.Equal(t, "No-id-http://c", items[2].ID)
	require.True(t, sampleNews()[1].PublishedAt.Equal(items[1].PublishedAt))

	require.NoError(t, store.Save(ctx, sampleNews()[:1]))
	items, err = store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1, "save replaces the whole list")
}

func TestSQLite_Memory(t *testing.T) {
	store, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(context.Background(), sampleNews()))
	items, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestSQLite_MemoryIsolated(t *testing.T) {
	ctx := context.Background()

	a, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer a.Close()
	b, err := db.OpenSQLite(":memory:")
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.Save(ctx, sampleNews()[:1]))

	items, err := b.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, items)

	items, err = a.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestPostgres_SaveLoad(t *testing.T) {
	dsn := os.Getenv("NEWSPAGE_TEST_DSN")
	if dsn == "" {
		t.Skip("NEWSPAGE_TEST_DSN not set")
	}
	ctx := context.Background()

	database, err := db.NewDB(ctx, dsn)
	require.NoError(t, err)
	defer database.Close()

	_, err = database.Pool.Exec(ctx, `TRUNCATE TABLE news`)
	require.NoError(t, err)

	t.Run("save and load", func(t *testing.T) {
		require.NoError(t, database.Save(ctx, sampleNews()))

		items, err := database.Load(ctx)
		require.NoError(t, err)
		require.Len(t, items, 3)
		require.Equal(t, "b", items[0].ID)
	})

	t.Run("ping", func(t *testing.T) {
		require.NoError(t, database.Ping(ctx))
	})
}
