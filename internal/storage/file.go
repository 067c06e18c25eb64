package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/jwebster45206/dream-market/pkg/state"
	"github.com/jwebster45206/dream-market/pkg/storage"
)

// FileStorage persists gamestates as one JSON file per session under a
// save directory. Writes go through a temp file and rename so a crash
// mid-save never leaves a truncated file behind.
type FileStorage struct {
	dir    string
	logger *slog.Logger
}

// Ensure FileStorage implements Storage interface
var _ storage.Storage = (*FileStorage)(nil)

// NewFileStorage creates a file storage rooted at dir, creating it if
// needed.
func NewFileStorage(dir string, logger *slog.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save dir %s: %w", dir, err)
	}
	return &FileStorage{dir: dir, logger: logger}, nil
}

func (f *FileStorage) path(id uuid.UUID) string {
	return filepath.Join(f.dir, id.String()+".json")
}

func (f *FileStorage) Ping(ctx context.Context) error {
	if _, err := os.Stat(f.dir); err != nil {
		return fmt.Errorf("save dir unavailable: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error { return nil }

func (f *FileStorage) SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error {
	gs.Touch()
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal gamestate: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+id.String()+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp save: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write save: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close save: %w", err)
	}
	if err := os.Rename(tmpName, f.path(id)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to finalize save: %w", err)
	}

	f.logger.Debug("Saved gamestate", "uuid", id, "path", f.path(id))
	return nil
}

func (f *FileStorage) LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error) {
	data, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("failed to read save: %w", err)
	}

	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		f.logger.Error("Failed to unmarshal gamestate", "uuid", id, "error", err)
		return nil, fmt.Errorf("save %s: %w", id, storage.ErrCorruptData)
	}
	return &gs, nil
}

func (f *FileStorage) DeleteGameState(ctx context.Context, id uuid.UUID) error {
	if err := os.Remove(f.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete save: %w", err)
	}
	return nil
}

// ListGameStates returns the ids of every save file in the directory.
// Files whose names are not uuids are ignored.
func (f *FileStorage) ListGameStates(ctx context.Context) ([]uuid.UUID, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}

	var ids []uuid.UUID
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		base := e.Name()[:len(e.Name())-len(".json")]
		id, err := uuid.Parse(base)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
