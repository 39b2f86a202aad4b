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
var _ driven.LicenseStore = (*LicenseRepo)(nil)

// LicenseRepo is the SQLite implementation of the LicenseStore port
// interface. Each license is one row; inserts go through the single-writer
// connection and are atomic per record.
type LicenseRepo struct {
	db *DB
}

// NewLicenseRepo creates a new LicenseRepo backed by the given DB.
func NewLicenseRepo(db *DB) *LicenseRepo {
	return &LicenseRepo{db: db}
}

// Insert appends a new license. The caller assigns the ID; a duplicate ID
// violates the primary key and is returned as an error.
func (r *LicenseRepo) Insert(ctx context.Context, lic model.License) error {
	const query = `INSERT INTO licenses (id, name, start_date, expiration_date, added_by, created_at) VALUES (?, ?, ?, ?, ?, ?)`

	createdAt := lic.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := r.db.Writer.ExecContext(ctx, query,
		lic.ID,
		lic.Name,
		lic.StartDate.UTC().Format(time.RFC3339),
		lic.ExpirationDate.UTC().Format(time.RFC3339),
		lic.AddedBy,
		createdAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert license %s: %w", lic.ID, err)
	}

	return nil
}

// GetByID retrieves a license by its ID. Returns nil, nil if absent.
func (r *LicenseRepo) GetByID(ctx context.Context, id string) (*model.License, error) {
	const query = `SELECT id, name, start_date, expiration_date, added_by, created_at FROM licenses WHERE id = ?`

	lic, err := scanLicense(r.db.Reader.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get license %s: %w", id, err)
	}

	return lic, nil
}

// ListAll returns every license in insertion order (rowid order).
func (r *LicenseRepo) ListAll(ctx context.Context) ([]model.License, error) {
	const query = `SELECT id, name, start_date, expiration_date, added_by, created_at FROM licenses ORDER BY rowid`

	rows, err := r.db.Reader.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}
	defer rows.Close()

	licenses := []model.License{}
	for rows.Next() {
		lic, err := scanLicense(rows)
		if err != nil {
			return nil, fmt.Errorf("scan license: %w", err)
		}
		licenses = append(licenses, *lic)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate licenses: %w", err)
	}

	return licenses, nil
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanLicense(s scanner) (*model.License, error) {
	var lic model.License
	var startDate, expirationDate, createdAt string

	err := s.Scan(&lic.ID, &lic.Name, &startDate, &expirationDate, &lic.AddedBy, &createdAt)
	if err != nil {
		return nil, err
	}

	if lic.StartDate, err = parseTime(startDate); err != nil {
		return nil, fmt.Errorf("parse start_date: %w", err)
	}
	if lic.ExpirationDate, err = parseTime(expirationDate); err != nil {
		return nil, fmt.Errorf("parse expiration_date: %w", err)
	}
	if lic.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}

	return &lic, nil
}

// parseTime tries multiple SQLite datetime formats.
func parseTime(s string) (time.Time, error) {
	formats := []string{
		"2006-01-02T15:04:05Z",
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
		time.RFC3339,
		time.RFC3339Nano,
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unrecognized time format: %s", s)
}
