// Package memory holds in-process driven adapters for state that is
// deliberately not persisted.
package memory

import (
	"context"
	"sync"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.SessionStore = (*SessionRepo)(nil)

// SessionRepo is the in-memory implementation of the SessionStore port.
// Sessions are process-lifetime scoped and do not survive a restart.
type SessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

// NewSessionRepo creates an empty in-memory session repository.
func NewSessionRepo() *SessionRepo {
	return &SessionRepo{
		sessions: make(map[string]model.Session),
	}
}

// Put stores a session under its token, replacing any existing entry.
func (r *SessionRepo) Put(_ context.Context, session model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[session.Token] = session
	return nil
}

// Get retrieves a session by token. Returns nil, nil if absent.
func (r *SessionRepo) Get(_ context.Context, token string) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[token]
	if !ok {
		return nil, nil
	}

	return &session, nil
}

// Delete removes a session. Deleting an absent token is not an error.
func (r *SessionRepo) Delete(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, token)
	return nil
}
