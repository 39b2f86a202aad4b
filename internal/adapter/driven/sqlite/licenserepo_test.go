package sqlite

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

func testLicense(id string) model.License {
	return model.License{
		ID:             id,
		Name:           "License " + id,
		StartDate:      time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		ExpirationDate: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		AddedBy:        "legal@corp.com",
		CreatedAt:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func TestLicenseRepo_InsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testLicense("lic-1")))

	got, err := repo.GetByID(ctx, "lic-1")
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, "License lic-1", got.Name)
	assert.Equal(t, "legal@corp.com", got.AddedBy)
	assert.True(t, got.StartDate.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, got.ExpirationDate.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))
}

func TestLicenseRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepo(db)

	got, err := repo.GetByID(context.Background(), "nonexistent")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLicenseRepo_DuplicateIDRejected(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Insert(ctx, testLicense("lic-1")))
	assert.Error(t, repo.Insert(ctx, testLicense("lic-1")))
}

func TestLicenseRepo_ListAllInsertionOrder(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepo(db)
	ctx := context.Background()

	// Insert in an order that differs from both name and date order.
	for _, id := range []string{"lic-c", "lic-a", "lic-b"} {
		require.NoError(t, repo.Insert(ctx, testLicense(id)))
	}

	licenses, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, licenses, 3)

	assert.Equal(t, "lic-c", licenses[0].ID)
	assert.Equal(t, "lic-a", licenses[1].ID)
	assert.Equal(t, "lic-b", licenses[2].ID)
}

func TestLicenseRepo_ListAllEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepo(db)

	licenses, err := repo.ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, licenses)
	assert.Empty(t, licenses)
}

// Concurrent creates must not lose records: inserts are per-record writes
// through the single-writer connection, unlike a whole-collection rewrite
// where two writers sharing a pre-read snapshot would drop one record.
func TestLicenseRepo_ConcurrentInsertsLoseNothing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewLicenseRepo(db)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.Insert(ctx, testLicense(fmt.Sprintf("lic-%d", i)))
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d", i)
	}

	licenses, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, licenses, writers)
}
