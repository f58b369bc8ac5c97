package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/mgerber/venue-forecast/internal/scenario"
)

// FileStore persists each scenario as one JSON document named by its id
// under a data directory.
type FileStore struct {
	dir    string
	logger *zap.Logger
}

// NewFileStore creates the data directory if needed and returns a store
// over it. If logger is nil, a no-op logger is used.
func NewFileStore(dir string, logger *zap.Logger) (*FileStore, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if dir == "" {
		return nil, fmt.Errorf("data directory must not be empty")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// Save writes the scenario document, replacing any previous record under
// the same id.
func (fs *FileStore) Save(ctx context.Context, s *scenario.Scenario) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.ID == "" {
		return fmt.Errorf("scenario id must not be empty")
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scenario %s: %w", s.ID, err)
	}

	path := fs.path(s.ID)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write scenario %s: %w", s.ID, err)
	}

	fs.logger.Debug("scenario saved",
		zap.String("op", "store.FileStore.Save"),
		zap.String("id", s.ID),
		zap.String("path", path),
	)
	return nil
}

// Load reads and migrates one scenario by id.
func (fs *FileStore) Load(ctx context.Context, id string) (*scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fs.path(id))
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read scenario %s: %w", id, err)
	}

	var s scenario.Scenario
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode scenario %s: %w", id, err)
	}

	migrateLoaded(&s)
	return &s, nil
}

// Delete removes one scenario by id.
func (fs *FileStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.Remove(fs.path(id)); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete scenario %s: %w", id, err)
	}
	return nil
}

// List loads every scenario in the directory sorted most recently updated
// first. Unreadable documents are skipped with a warning rather than
// failing the whole listing.
func (fs *FileStore) List(ctx context.Context) ([]scenario.Scenario, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(fs.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read data directory %s: %w", fs.dir, err)
	}

	scenarios := make([]scenario.Scenario, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		s, err := fs.Load(ctx, id)
		if err != nil {
			fs.logger.Warn("skipping unreadable scenario document",
				zap.String("op", "store.FileStore.List"),
				zap.String("file", entry.Name()),
				zap.Error(err),
			)
			continue
		}
		scenarios = append(scenarios, *s)
	}

	sort.Slice(scenarios, func(i, j int) bool {
		return scenarios[i].UpdatedAt.After(scenarios[j].UpdatedAt)
	})
	return scenarios, nil
}

func (fs *FileStore) path(id string) string {
	// Ids are UUIDs; Base strips anything path-like out of hand-edited input.
	return filepath.Join(fs.dir, filepath.Base(id)+".json")
}
