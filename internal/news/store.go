package news

import (
	"sync"
	"time"

	"newspage/internal/models"
)

// Store owns the loaded news list. Replace swaps the whole list at once, so
// readers never observe a partial load.
type Store struct {
	mu       sync.RWMutex
	items    []models.NewsItem
	loadedAt time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Replace installs a new list. The slice is copied.
func (s *Store) Replace(items []models.NewsItem) {
	cp := make([]models.NewsItem, len(items))
	copy(cp, items)

	s.mu.Lock()
	s.items = cp
	s.loadedAt = time.Now()
	s.mu.Unlock()
}

// Items returns a copy of the current list.
func (s *Store) Items() []models.NewsItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cp := make([]models.NewsItem, len(s.items))
	copy(cp, s.items)
	return cp
}

// Len reports the number of stored items.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// LoadedAt reports when the list was last replaced; zero if never.
func (s *Store) LoadedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadedAt
}
