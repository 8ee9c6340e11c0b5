package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/chime/internal/logger"
	"github.com/julianstephens/chime/internal/storage/sqlite"
)

// IsJSONPath reports whether path selects the flat JSON backend.
func IsJSONPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// New returns the provider for path without touching the filesystem.
func New(path string) Provider {
	if IsJSONPath(path) {
		return NewJSONStore(path)
	}
	return sqlite.NewStore(path)
}

// Open returns a ready provider for path, creating the storage on first run.
func Open(path string) (Provider, error) {
	store := New(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info("Creating preferences storage", "path", path)
		if err := store.Init(); err != nil {
			return nil, fmt.Errorf("failed to initialize storage at %s: %w", path, err)
		}
		return store, nil
	}

	if err := store.Load(); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to load storage at %s: %w", path, err)
	}
	return store, nil
}
