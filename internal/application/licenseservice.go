package application

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
	"github.com/ericfisherdev/licensepanel/internal/domain/port/driven"
)

// dateLayouts are the accepted input formats for license validity instants,
// tried in order: full RFC 3339, the HTML datetime-local format, and a bare
// date (interpreted as midnight UTC).
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

// CreateLicenseInput carries the raw form values for a new license. Dates
// arrive as strings and are validated here.
type CreateLicenseInput struct {
	Name           string
	StartDate      string
	ExpirationDate string
	AddedBy        string
}

// LicenseView pairs a stored license with its presentation state derived at
// read time.
type LicenseView struct {
	License   model.License
	Status    model.LicenseStatus
	Remaining string
}

// LicenseService owns license creation and the status-annotated listing.
// It depends only on port interfaces; the clock is injectable for tests.
type LicenseService struct {
	store driven.LicenseStore
	now   func() time.Time
}

// LicenseServiceOption configures a LicenseService.
type LicenseServiceOption func(*LicenseService)

// WithLicenseClock overrides the service clock, primarily for testing.
func WithLicenseClock(now func() time.Time) LicenseServiceOption {
	return func(s *LicenseService) {
		s.now = now
	}
}

// NewLicenseService creates a LicenseService backed by the given store.
func NewLicenseService(store driven.LicenseStore, options ...LicenseServiceOption) *LicenseService {
	s := &LicenseService{
		store: store,
		now:   time.Now,
	}
	for _, opt := range options {
		opt(s)
	}
	return s
}

// Create validates the input, assigns a fresh unique ID, and persists the
// license as a single-row insert. Two calls with identical inputs produce
// two distinct records. Malformed input yields a *ValidationError.
func (s *LicenseService) Create(ctx context.Context, in CreateLicenseInput) (model.License, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return model.License{}, &ValidationError{Field: "name", Message: "name is required"}
	}

	start, err := parseDate(in.StartDate)
	if err != nil {
		return model.License{}, &ValidationError{Field: "start_date", Message: "must be a valid date"}
	}

	expiration, err := parseDate(in.ExpirationDate)
	if err != nil {
		return model.License{}, &ValidationError{Field: "expiration_date", Message: "must be a valid date"}
	}

	if !expiration.After(start) {
		return model.License{}, &ValidationError{Field: "expiration_date", Message: "must be after start_date"}
	}

	lic := model.License{
		ID:             uuid.NewString(),
		Name:           name,
		StartDate:      start,
		ExpirationDate: expiration,
		AddedBy:        in.AddedBy,
		CreatedAt:      s.now().UTC(),
	}

	if err := s.store.Insert(ctx, lic); err != nil {
		return model.License{}, fmt.Errorf("create license: %w", err)
	}

	return lic, nil
}

// List returns all licenses in insertion order, each annotated with its
// status and remaining time relative to a single clock reading.
func (s *LicenseService) List(ctx context.Context) ([]LicenseView, error) {
	licenses, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list licenses: %w", err)
	}

	now := s.now()
	views := make([]LicenseView, 0, len(licenses))
	for _, lic := range licenses {
		views = append(views, LicenseView{
			License:   lic,
			Status:    lic.StatusAt(now),
			Remaining: lic.RemainingAt(now),
		})
	}

	return views, nil
}

func parseDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %s", raw)
}
