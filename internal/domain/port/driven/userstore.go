package driven

import (
	"context"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

// UserStore defines the driven port for credential persistence. At most one
// credential exists per email; Upsert overwrites unconditionally (last write
// wins, per the portal's registration semantics).
type UserStore interface {
	Upsert(ctx context.Context, user model.User) error

	// GetByEmail retrieves the credential for an exact email. Returns
	// nil, nil if absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// ListAll returns all credentials ordered by email.
	ListAll(ctx context.Context) ([]model.User, error)

	// Count returns the number of stored credentials.
	Count(ctx context.Context) (int, error)
}
