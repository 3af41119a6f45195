package sqlite

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/gorm"

	"user-rest-service/internal/domain/user"
)

func setupTestRepo(t *testing.T) *UserRepoSQLite {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	repo, err := NewUserRepoSQLite(db, user.Seed(), zaptest.NewLogger(t))
	require.NoError(t, err)
	return repo
}

func TestUserRepoSQLite_SeededState(t *testing.T) {
	repo := setupTestRepo(t)

	users, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, user.User{ID: 1, Name: "Alice", Email: "alice@example.com"}, users[0])
	assert.Equal(t, user.User{ID: 2, Name: "Bob", Email: "bob@example.com"}, users[1])
	assert.Equal(t, user.User{ID: 3, Name: "Charlie", Email: "charlie@example.com"}, users[2])

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestUserRepoSQLite_Create_ContinuesPastSeed(t *testing.T) {
	repo := setupTestRepo(t)

	id, err := repo.Create(context.Background(), &user.User{Name: "Dana", Email: "dana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)

	got, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Dana", got.Name)

	// Next create keeps the sequence monotonic
	id2, err := repo.Create(context.Background(), &user.User{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), id2)
}

func TestUserRepoSQLite_GetByID_Miss(t *testing.T) {
	repo := setupTestRepo(t)

	got, err := repo.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepoSQLite_Create_NilUser(t *testing.T) {
	repo := setupTestRepo(t)

	_, err := repo.Create(context.Background(), nil)
	assert.Error(t, err)
}

func TestUserRepoSQLite_SeedOnlyWhenEmpty(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	log := zaptest.NewLogger(t)
	_, err = NewUserRepoSQLite(db, user.Seed(), log)
	require.NoError(t, err)

	// Re-running the constructor against the same database must not duplicate rows
	repo, err := NewUserRepoSQLite(db, user.Seed(), log)
	require.NoError(t, err)

	n, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}
