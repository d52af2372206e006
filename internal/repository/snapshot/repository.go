package snapshot

import (
	"context"

	"expomall/internal/domain"
)

// Repository is the durable slot for per-session cart snapshots: one row per
// session, overwritten on every mutation, read once when the session is first
// touched.
type Repository interface {
	Load(ctx context.Context, sessionID string) (*domain.CartSnapshot, error)
	Save(ctx context.Context, sessionID string, snap domain.CartSnapshot) error
	Delete(ctx context.Context, sessionID string) error
}
