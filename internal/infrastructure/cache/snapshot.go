package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/satyaprakrati/cozico/internal/domain/cart"
)

// snapshotVersion is bumped whenever the persisted layout changes
const snapshotVersion = 1

// SnapshotStore is a cart.SnapshotRepository that owns a connection
type SnapshotStore interface {
	cart.SnapshotRepository
	Ping(ctx context.Context) error
	Close() error
}

type snapshotEnvelope struct {
	Version int        `json:"version"`
	SavedAt time.Time  `json:"saved_at"`
	State   cart.State `json:"state"`
}

func encodeSnapshot(state cart.State) ([]byte, error) {
	data, err := json.Marshal(snapshotEnvelope{
		Version: snapshotVersion,
		SavedAt: time.Now().UTC(),
		State:   state,
	})
	if err != nil {
		return nil, fmt.Errorf("encode cart snapshot: %w", err)
	}
	return data, nil
}

func decodeSnapshot(data []byte) (cart.State, error) {
	var env snapshotEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return cart.State{}, fmt.Errorf("decode cart snapshot: %w: %w", cart.ErrCorruptSnapshot, err)
	}
	if env.Version != snapshotVersion {
		return cart.State{}, fmt.Errorf("decode cart snapshot: %w: unsupported version %d", cart.ErrCorruptSnapshot, env.Version)
	}
	return env.State, nil
}
