package ports

import (
	"context"

	"github.com/aretw0/animefmt/pkg/domain"
)

// SessionStore defines the interface for keeping selection sessions.
// It is the single source of truth: callers never hold a private copy.
type SessionStore interface {
	// Put creates or overwrites the session for session.OwnerID.
	Put(ctx context.Context, session *domain.Session) error

	// Get retrieves the session for an owner.
	// Returns domain.ErrSessionNotFound if the owner has no session.
	Get(ctx context.Context, ownerID int64) (*domain.Session, error)

	// Delete removes the session for an owner.
	Delete(ctx context.Context, ownerID int64) error
}
