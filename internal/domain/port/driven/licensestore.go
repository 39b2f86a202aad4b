package driven

import (
	"context"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

// LicenseStore defines the driven port for license persistence. Records are
// immutable once inserted; the collection only grows.
type LicenseStore interface {
	// Insert appends a new license. IDs are assigned by the caller and must
	// be unique; a duplicate ID is an error.
	Insert(ctx context.Context, lic model.License) error

	// GetByID retrieves a license by its ID. Returns nil, nil if absent.
	GetByID(ctx context.Context, id string) (*model.License, error)

	// ListAll returns every license in insertion order. Empty slice when
	// none are stored.
	ListAll(ctx context.Context) ([]model.License, error)
}
