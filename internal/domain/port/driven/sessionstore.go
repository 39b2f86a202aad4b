package driven

import (
	"context"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

// SessionStore defines the driven port for ephemeral session records keyed
// by opaque token. Implementations are process-lifetime scoped; sessions are
// not required to survive a restart.
type SessionStore interface {
	Put(ctx context.Context, session model.Session) error

	// Get retrieves a session by token. Returns nil, nil if absent.
	Get(ctx context.Context, token string) (*model.Session, error)

	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}
