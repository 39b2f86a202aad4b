package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// AuthService owns credential registration, authentication, and the session
// lifecycle. Passwords are stored as bcrypt hashes and compared with
// bcrypt's constant-time check; the plaintext never touches the store.
type AuthService struct {
	users    driven.UserStore
	sessions driven.SessionStore
	now      func() time.Time
}

// AuthServiceOption configures an AuthService.
type AuthServiceOption func(*AuthService)

// WithAuthClock overrides the service clock, primarily for testing.
func WithAuthClock(now func() time.Time) AuthServiceOption {
	return func(s *AuthService) {
		s.now = now
	}
}

// NewAuthService creates an AuthService with the required dependencies.
func NewAuthService(users driven.UserStore, sessions driven.SessionStore, options ...AuthServiceOption) *AuthService {
	s := &AuthService{
		users:    users,
		sessions: sessions,
		now:      time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Register hashes the password and upserts the credential. An existing
// credential for the same email is overwritten unconditionally: last write
// wins, including the role.
func (s *AuthService) Register(ctx context.Context, email, password string, role model.Role) (model.User, error) {
	if email == "" {
		return model.User{}, &ValidationError{Field: "email", Message: "email is required"}
	}
	if password == "" {
		return model.User{}, &ValidationError{Field: "password", Message: "password is required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    s.now().UTC(),
		UpdatedAt:    s.now().UTC(),
	}

	if err := s.users.Upsert(ctx, user); err != nil {
		return model.User{}, fmt.Errorf("register %s: %w", email, err)
	}

	return user, nil
}

// Authenticate verifies the credential and, on success, creates a session
// snapshotting the identity and role under a fresh opaque token. An unknown
// email and a password mismatch are indistinguishable to the caller.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (model.Session, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return model.Session{}, fmt.Errorf("authenticate %s: %w", email, err)
	}
	if user == nil {
		return model.Session{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return model.Session{}, ErrInvalidCredentials
	}

	session := model.Session{
		Token:     uuid.NewString(),
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: s.now().UTC(),
	}

	if err := s.sessions.Put(ctx, session); err != nil {
		return model.Session{}, fmt.Errorf("store session for %s: %w", email, err)
	}

	return session, nil
}

// CurrentSession resolves a session token. The role returned is the one
// snapshotted at authentication time; it is not re-derived from the user
// store.
func (s *AuthService) CurrentSession(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, ErrNoSession
	}

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		return model.Session{}, fmt.Errorf("resolve session: %w", err)
	}
	if session == nil {
		return model.Session{}, ErrNoSession
	}

	return *session, nil
}

// EndSession removes the session for the given token. Ending an absent
// session is a no-op.
func (s *AuthService) EndSession(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}
