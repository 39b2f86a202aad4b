package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.UserStore = (*UserRepo)(nil)

// UserRepo is the SQLite implementation of the UserStore port interface.
// Email is the primary key; Upsert overwrites the existing row wholesale,
// matching the portal's last-write-wins registration semantics.
type UserRepo struct {
	db *DB
}

// NewUserRepo creates a new UserRepo backed by the given DB.
func NewUserRepo(db *DB) *UserRepo {
	return &UserRepo{db: db}
}

// Upsert stores or replaces the credential for the given email.
func (r *UserRepo) Upsert(ctx context.Context, user model.User) error {
	const query = `
		INSERT INTO users (email, password_hash, role, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(email) DO UPDATE SET
			password_hash = excluded.password_hash,
			role = excluded.role,
			updated_at = excluded.updated_at`

	createdAt := user.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	updatedAt := user.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = createdAt
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		user.Email,
		user.PasswordHash,
		string(user.Role),
		createdAt.UTC().Format(time.RFC3339),
		updatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert user %s: %w", user.Email, err)
	}

	return nil
}

// GetByEmail retrieves the credential for an exact email. Returns nil, nil
// if no credential exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const query = `SELECT email, password_hash, role, created_at, updated_at FROM users WHERE email = ?`

	user, err := scanUser(r.db.Reader.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user %s: %w", email, err)
	}

	return user, nil
}

// ListAll returns all credentials ordered by email.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	const query = `SELECT email, password_hash, role, created_at, updated_at FROM users ORDER BY email`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Count returns the number of stored credentials.
func (r *UserRepo) Count(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM users`

	var n int
	if err := r.db.Reader.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return n, nil
}

func scanUser(s scanner) (*model.User, error) {
	var user model.User
	var role, createdAt, updatedAt string

	err := s.Scan(&user.Email, &user.PasswordHash, &role, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	user.Role, err = model.ParseRole(role)
	if err != nil {
		return nil, fmt.Errorf("parse role: %w", err)
	}
	if user.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if user.UpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}

	return &user, nil
}
