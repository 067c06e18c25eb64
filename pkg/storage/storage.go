package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jwebster45206/dream-market/pkg/state"
)

var (
	// ErrNotFound is returned when no gamestate exists for the given id.
	ErrNotFound = errors.New("gamestate not found")
	// ErrCorruptData is returned when a stored gamestate cannot be decoded.
	ErrCorruptData = errors.New("gamestate data is corrupt")
)

// Storage persists game sessions. Implementations are file-backed, Redis
// backed, or in-memory for tests.
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// GameState operations
	SaveGameState(ctx context.Context, id uuid.UUID, gs *state.GameState) error
	LoadGameState(ctx context.Context, id uuid.UUID) (*state.GameState, error)
	DeleteGameState(ctx context.Context, id uuid.UUID) error
	ListGameStates(ctx context.Context) ([]uuid.UUID, error)
}
