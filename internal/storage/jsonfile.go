package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"newspage/internal/models"
)

// JSONFile keeps the list in a single indented JSON file.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

// NewJSONFile returns a repository backed by path. The file is created on
// first save.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Load reads the file; a missing file is an empty list.
func (f *JSONFile) Load(context.Context) ([]models.NewsItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.NewsItem{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}

	var items []models.NewsItem
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []models.NewsItem{}
	}
	return items, nil
}

// Save writes the list through a temp file and rename.
func (f *JSONFile) Save(_ context.Context, items []models.NewsItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if items == nil {
		items = []models.NewsItem{}
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), filepath.Base(f.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod file: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.path); err != nil {
		return fmt.Errorf("rename file: %w", err)
	}
	return nil
}

func (f *JSONFile) Close() error {
	return nil
}
