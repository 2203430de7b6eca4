package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opskit/adminctl/pkg/domain/user"
)

func newTestRepository(t *testing.T) *SQLiteUserRepository {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "adminctl.db")
	repo, err := NewSQLiteUserRepositoryWithPath(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func testUser(id string) user.User {
	return user.User{
		ID:        id,
		Email:     "ops@example.com",
		Name:      "Ops Admin",
		Role:      "admin",
		CreatedAt: "2024-06-15",
	}
}

func TestSaveAndGet(t *testing.T) {
	repo := newTestRepository(t)

	u := testUser("507f1f77bcf86cd799439011")
	require.NoError(t, repo.Save(u))

	got, err := repo.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, u, got)
}

func TestSaveUpserts(t *testing.T) {
	repo := newTestRepository(t)

	u := testUser("507f1f77bcf86cd799439011")
	require.NoError(t, repo.Save(u))

	u.Role = "viewer"
	require.NoError(t, repo.Save(u))

	got, err := repo.Get(u.ID)
	require.NoError(t, err)
	assert.Equal(t, "viewer", got.Role)

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestSaveRejectsEmptyID(t *testing.T) {
	repo := newTestRepository(t)
	require.Error(t, repo.Save(user.User{Email: "ops@example.com"}))
}

func TestGetMissing(t *testing.T) {
	repo := newTestRepository(t)
	_, err := repo.Get("aaaaaaaaaaaaaaaaaaaaaaaa")
	require.Error(t, err)
}

func TestListOrdered(t *testing.T) {
	repo := newTestRepository(t)

	require.NoError(t, repo.Save(testUser("bbbbbbbbbbbbbbbbbbbbbbbb")))
	require.NoError(t, repo.Save(testUser("aaaaaaaaaaaaaaaaaaaaaaaa")))

	users, err := repo.List()
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaa", users[0].ID)
	assert.Equal(t, "bbbbbbbbbbbbbbbbbbbbbbbb", users[1].ID)
}

func TestDelete(t *testing.T) {
	repo := newTestRepository(t)

	u := testUser("507f1f77bcf86cd799439011")
	require.NoError(t, repo.Save(u))
	require.NoError(t, repo.Delete(u.ID))

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Deleting again is not an error.
	require.NoError(t, repo.Delete(u.ID))
}

func TestSchemaReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "adminctl.db")

	repo, err := NewSQLiteUserRepositoryWithPath(dbPath)
	require.NoError(t, err)
	require.NoError(t, repo.Save(testUser("507f1f77bcf86cd799439011")))
	require.NoError(t, repo.Close())

	// Re-running migrations against an existing database is a no-op.
	repo, err = NewSQLiteUserRepositoryWithPath(dbPath)
	require.NoError(t, err)
	defer func() { _ = repo.Close() }()

	n, err := repo.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
