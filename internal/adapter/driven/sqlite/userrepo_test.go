package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/licensepanel/internal/domain/model"
)

func testUser(email string, role model.Role) model.User {
	return model.User{
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehashfakehashfakehashfakehashfake",
		Role:         role,
		CreatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestUserRepo_UpsertAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testUser("dev@corp.com", model.RoleDeveloper)))

	got, err := repo.GetByEmail(ctx, "dev@corp.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.RoleDeveloper, got.Role)
}

func TestUserRepo_GetMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	got, err := repo.GetByEmail(context.Background(), "nobody@corp.com")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepo_GetIsExactMatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testUser("dev@corp.com", model.RoleDeveloper)))

	got, err := repo.GetByEmail(ctx, "Dev@corp.com")
	require.NoError(t, err)
	assert.Nil(t, got, "identity lookup must be byte-for-byte exact")
}

func TestUserRepo_UpsertOverwrites(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testUser("person@corp.com", model.RoleDeveloper)))

	replacement := testUser("person@corp.com", model.RoleManager)
	replacement.PasswordHash = "$2a$10$differenthashdifferenthashdifferenthashdifferenthash"
	replacement.UpdatedAt = time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, repo.Upsert(ctx, replacement))

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n, "overwrite must not create a second credential")

	got, err := repo.GetByEmail(ctx, "person@corp.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, model.RoleManager, got.Role)
	assert.Equal(t, replacement.PasswordHash, got.PasswordHash)
}

func TestUserRepo_ListAllOrderedByEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, testUser("manager@corp.com", model.RoleManager)))
	require.NoError(t, repo.Upsert(ctx, testUser("dev@corp.com", model.RoleDeveloper)))
	require.NoError(t, repo.Upsert(ctx, testUser("legal@corp.com", model.RoleLegalOfficer)))

	users, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 3)

	assert.Equal(t, "dev@corp.com", users[0].Email)
	assert.Equal(t, "legal@corp.com", users[1].Email)
	assert.Equal(t, "manager@corp.com", users[2].Email)
}

func TestUserRepo_CountEmpty(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepo(db)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}
