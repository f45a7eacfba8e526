package source

import (
	"context"

	"newspage/internal/models"
	"newspage/internal/news"
)

// Lister is anything holding a loaded news list, such as the crawler store or
// a repository.
type Lister interface {
	Load(ctx context.Context) ([]models.NewsItem, error)
}

// Repository adapts a Lister to Source.
type Repository struct {
	repo Lister
}

// NewRepository wraps repo.
func NewRepository(repo Lister) *Repository {
	return &Repository{repo: repo}
}

func (r *Repository) Fetch(ctx context.Context) ([]models.NewsItem, error) {
	return r.repo.Load(ctx)
}

// Memory reads the current contents of a news store.
type Memory struct {
	store *news.Store
}

// NewMemory wraps store.
func NewMemory(store *news.Store) *Memory {
	return &Memory{store: store}
}

func (m *Memory) Fetch(context.Context) ([]models.NewsItem, error) {
	return m.store.Items(), nil
}
