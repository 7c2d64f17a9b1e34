package content

import (
	"context"
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"radicaltutor/internal/metrics"
	"radicaltutor/internal/models"
)

const defaultDebounce = 200 * time.Millisecond

// Store serves the catalog from memory and reloads it from disk on demand
// or when the file changes. A missing or malformed file yields the empty
// catalog so that every content route fails closed.
type Store struct {
	path     string
	debounce time.Duration

	mu      sync.RWMutex
	catalog *models.Catalog
	loadErr error
}

// NewStore creates a store and performs the initial load
func NewStore(path string) *Store {
	s := &Store{path: path, debounce: defaultDebounce}
	s.Reload()
	return s
}

// NewStaticStore serves a fixed catalog; used by tools and tests
func NewStaticStore(catalog *models.Catalog) *Store {
	if catalog == nil {
		catalog = EmptyCatalog()
	}
	return &Store{catalog: catalog}
}

// Catalog returns the current catalog. Callers must not modify it.
func (s *Store) Catalog() *models.Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.catalog
}

// Err returns the error of the last load, if any
func (s *Store) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Reload reads the catalog file again. On failure the empty catalog is
// served and the error is returned.
func (s *Store) Reload() error {
	catalog, err := Load(s.path)
	switch {
	case err == nil:
		log.Printf("Catalog loaded from %s: %d radicals, %d practice items, %d quiz questions",
			s.path, len(catalog.Radicals), len(catalog.Practice), len(catalog.Quiz))
	case errors.Is(err, ErrCatalogNotFound):
		log.Printf("Warning: catalog %s not found, serving empty catalog", s.path)
		catalog = EmptyCatalog()
	case errors.Is(err, ErrCatalogCorrupt):
		log.Printf("Warning: catalog %s is corrupt, serving empty catalog: %v", s.path, err)
		catalog = EmptyCatalog()
	default:
		log.Printf("Warning: failed to load catalog, serving empty catalog: %v", err)
		catalog = EmptyCatalog()
	}

	s.mu.Lock()
	s.catalog = catalog
	s.loadErr = err
	s.mu.Unlock()

	metrics.SetCatalogSize(catalog)
	return err
}

// Watch reloads the catalog whenever its file is written, created or
// replaced. The parent directory is watched because editors usually swap
// files by rename. Watch returns once the watcher is running; it stops when
// ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return errors.New("static catalog cannot be watched")
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	go s.processEvents(ctx, fsw)

	log.Printf("Watching catalog %s for changes", s.path)
	return nil
}

func (s *Store) processEvents(ctx context.Context, fsw *fsnotify.Watcher) {
	defer fsw.Close()

	target := filepath.Clean(s.path)
	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
				pending = time.After(s.debounce)
			}

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.Printf("Catalog watcher error: %v", err)

		case <-pending:
			pending = nil
			s.Reload()
		}
	}
}
