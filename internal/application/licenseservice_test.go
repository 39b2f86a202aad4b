package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

// --- Mock implementations for LicenseService tests ---

type mockLicenseStore struct {
	licenses  []model.License
	insertErr error
	listErr   error
}

func (m *mockLicenseStore) Insert(_ context.Context, lic model.License) error {
	if m.insertErr != nil {
		return m.insertErr
	}
	m.licenses = append(m.licenses, lic)
	return nil
}

func (m *mockLicenseStore) GetByID(_ context.Context, id string) (*model.License, error) {
	for _, lic := range m.licenses {
		if lic.ID == id {
			return &lic, nil
		}
	}
	return nil, nil
}

func (m *mockLicenseStore) ListAll(_ context.Context) ([]model.License, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.licenses, nil
}

var serviceNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestLicenseService(store *mockLicenseStore) *LicenseService {
	return NewLicenseService(store, WithLicenseClock(func() time.Time { return serviceNow }))
}

func validInput() CreateLicenseInput {
	return CreateLicenseInput{
		Name:           "ACME Enterprise License",
		StartDate:      "2024-01-01T00:00:00Z",
		ExpirationDate: "2025-01-01T00:00:00Z",
		AddedBy:        "legal@corp.com",
	}
}

func TestLicenseService_Create(t *testing.T) {
	store := &mockLicenseStore{}
	svc := newTestLicenseService(store)

	lic, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, lic.ID)
	assert.Equal(t, "ACME Enterprise License", lic.Name)
	assert.Equal(t, "legal@corp.com", lic.AddedBy)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), lic.StartDate)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), lic.ExpirationDate)
	assert.Equal(t, serviceNow, lic.CreatedAt)
	require.Len(t, store.licenses, 1)
}

func TestLicenseService_CreateAcceptsDateOnlyAndLocalFormats(t *testing.T) {
	store := &mockLicenseStore{}
	svc := newTestLicenseService(store)

	in := validInput()
	in.StartDate = "2024-01-01"
	in.ExpirationDate = "2025-06-15T06:30"

	lic, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 6, 15, 6, 30, 0, 0, time.UTC), lic.ExpirationDate)
}

func TestLicenseService_CreateTwiceYieldsDistinctIDs(t *testing.T) {
	store := &mockLicenseStore{}
	svc := newTestLicenseService(store)

	first, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	second, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	require.Len(t, store.licenses, 2)
}

func TestLicenseService_CreateValidation(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*CreateLicenseInput)
		wantField string
	}{
		{"missing name", func(in *CreateLicenseInput) { in.Name = "  " }, "name"},
		{"malformed start", func(in *CreateLicenseInput) { in.StartDate = "yesterday" }, "start_date"},
		{"missing start", func(in *CreateLicenseInput) { in.StartDate = "" }, "start_date"},
		{"malformed expiration", func(in *CreateLicenseInput) { in.ExpirationDate = "2025-13-99" }, "expiration_date"},
		{"expiration before start", func(in *CreateLicenseInput) { in.ExpirationDate = "2023-01-01" }, "expiration_date"},
		{"expiration equals start", func(in *CreateLicenseInput) { in.ExpirationDate = "2024-01-01T00:00:00Z" }, "expiration_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &mockLicenseStore{}
			svc := newTestLicenseService(store)

			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.Empty(t, store.licenses, "nothing should be persisted on validation failure")
		})
	}
}

func TestLicenseService_CreateWrapsStoreError(t *testing.T) {
	store := &mockLicenseStore{insertErr: errors.New("disk full")}
	svc := newTestLicenseService(store)

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.ErrorContains(t, err, "create license")
}

func TestLicenseService_ListAnnotatesStatus(t *testing.T) {
	store := &mockLicenseStore{licenses: []model.License{
		{ID: "a", Name: "active", ExpirationDate: serviceNow.AddDate(0, 2, 0)},
		{ID: "b", Name: "expiring", ExpirationDate: serviceNow.Add(3 * time.Hour)},
		{ID: "c", Name: "expired", ExpirationDate: serviceNow.AddDate(0, -1, 0)},
	}}
	svc := newTestLicenseService(store)

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, views, 3)

	assert.Equal(t, "a", views[0].License.ID)
	assert.Equal(t, model.StatusActive, views[0].Status)
	assert.Equal(t, "2 months", views[0].Remaining)

	assert.Equal(t, model.StatusExpiringSoon, views[1].Status)
	assert.Equal(t, "3 hours", views[1].Remaining)

	assert.Equal(t, model.StatusExpired, views[2].Status)
	assert.Equal(t, model.ExpiredSignal, views[2].Remaining)
}

func TestLicenseService_ListEmpty(t *testing.T) {
	svc := newTestLicenseService(&mockLicenseStore{})

	views, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, views)
	assert.NotNil(t, views)
}
