package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrCorruptSnapshot marks a saved state that can never be read back
var ErrCorruptSnapshot = errors.New("cart: corrupt snapshot")

// SnapshotRepository persists whole store states keyed by session
type SnapshotRepository interface {
	// Load returns the saved state, or shared.ErrNotFound if none exists.
	// Undecodable data is reported as ErrCorruptSnapshot.
	Load(ctx context.Context, sessionID uuid.UUID) (State, error)

	// Save replaces the saved state
	Save(ctx context.Context, sessionID uuid.UUID, state State) error

	// Delete removes the saved state; deleting a missing state is not an error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}
