package cartstore

import (
	"context"
	"errors"

	"github.com/tacticalshop/storeapi/internal/domain"
)

// ErrNotFound is returned when no snapshot exists for a session
var ErrNotFound = errors.New("cart snapshot not found")

// Store persists per-session cart snapshots. Writes are last-writer-wins:
// two tabs editing the same session are not merged.
type Store interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}
