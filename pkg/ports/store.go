package ports

import (
	"context"

	"github.com/kdvornichenko/birthday/pkg/domain"
)

// ResponseStore persists per-session questionnaire state for the lifetime
// of a session. It is draft state, not an archive: a completed submission
// leaves nothing behind once its session is deleted.
type ResponseStore interface {
	// Save persists the response for a given session ID.
	Save(ctx context.Context, sessionID string, resp *domain.Response) error

	// Load retrieves the response for a given session ID.
	// Returns domain.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*domain.Response, error)

	// Delete removes the response for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of active sessions.
	List(ctx context.Context) ([]string, error)
}
