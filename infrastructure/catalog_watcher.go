package infrastructure

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"milestonebot/domain/entities"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

const catalogDebounce = 500 * time.Millisecond

// CatalogSource holds the species catalog in effect. It starts with the
// embedded catalog and can be replaced from a YAML file at runtime.
type CatalogSource struct {
	current atomic.Pointer[entities.Catalog]
}

// NewCatalogSource creates a source serving initial
func NewCatalogSource(initial *entities.Catalog) *CatalogSource {
	s := &CatalogSource{}
	s.current.Store(initial)
	return s
}

// Catalog returns the current catalog
func (s *CatalogSource) Catalog() *entities.Catalog {
	return s.current.Load()
}

// Reload parses path and swaps it in. On error the previous catalog stays.
func (s *CatalogSource) Reload(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	catalog, err := entities.ParseCatalog(data)
	if err != nil {
		return fmt.Errorf("failed to parse catalog %s: %w", path, err)
	}

	s.current.Store(catalog)
	log.WithFields(log.Fields{
		"path":    path,
		"species": len(catalog.Species),
	}).Info("Species catalog loaded")
	return nil
}

// Watch reloads path whenever it changes until ctx is cancelled or the
// returned stop func is called. The parent directory is watched so editors
// that replace the file on save are picked up too.
func (s *CatalogSource) Watch(ctx context.Context, path string) (func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog watcher: %w", err)
	}

	target := filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(target), err)
	}

	stopCh := make(chan struct{})
	doneCh := make(chan struct{})
	go s.watchLoop(ctx, watcher, target, stopCh, doneCh)

	var once sync.Once
	return func() {
		once.Do(func() {
			close(stopCh)
			<-doneCh
			if err := watcher.Close(); err != nil {
				log.Errorf("Error closing catalog watcher: %v", err)
			}
		})
	}, nil
}

func (s *CatalogSource) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, target string, stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	// zero means no change is waiting to be applied
	var changedAt time.Time

	for {
		select {
		case <-ctx.Done():
			return
		case <-stopCh:
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				changedAt = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.WithError(err).Error("Catalog watcher error")

		case <-ticker.C:
			if changedAt.IsZero() || time.Since(changedAt) < catalogDebounce {
				continue
			}
			changedAt = time.Time{}
			if err := s.Reload(target); err != nil {
				log.WithError(err).Warn("Keeping previous species catalog")
			}
		}
	}
}
