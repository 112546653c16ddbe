package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"storefront/internal/data/entity"
	"storefront/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestRepo runs against TEST_DATABASE_URL and skips when it is not set or unreachable.
func newTestRepo(t *testing.T) UserRepository {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.Open(ctx, dsn, 2)
	if err != nil {
		t.Skipf("database not available: %v", err)
	}
	t.Cleanup(db.Close)

	require.NoError(t, database.Migrate(ctx, db))
	_, err = db.Exec(ctx, "TRUNCATE users RESTART IDENTITY")
	require.NoError(t, err)

	return NewUserRepository(db, zap.NewNop())
}

func newUser(email string) *entity.User {
	return &entity.User{
		FirstName:    "Anna",
		LastName:     "Nowak",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Role:         entity.RoleUser,
	}
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("anna@example.com")
	require.NoError(t, repo.Create(ctx, user))
	assert.Positive(t, user.ID)
	assert.False(t, user.CreatedAt.IsZero())

	byID, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "anna@example.com", byID.Email)
	assert.Equal(t, entity.RoleUser, byID.Role)
	assert.Nil(t, byID.LastActiveAt)

	byEmail, err := repo.FindByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, user.ID, byEmail.ID)

	missing, err := repo.FindByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newUser("dup@example.com")))
	err := repo.Create(ctx, newUser("dup@example.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUserRepository_Mutations(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user := newUser("anna@example.com")
	require.NoError(t, repo.Create(ctx, user))

	require.NoError(t, repo.SetBanned(ctx, user.ID, true))
	require.NoError(t, repo.SetRole(ctx, user.ID, entity.RoleAdmin))
	at := time.Now().UTC().Truncate(time.Microsecond)
	require.NoError(t, repo.TouchLastActive(ctx, user.ID, at))

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsBanned)
	assert.True(t, stored.IsAdmin())
	require.NotNil(t, stored.LastActiveAt)
	assert.True(t, at.Equal(*stored.LastActiveAt))

	require.NoError(t, repo.Delete(ctx, user.ID))
	assert.Error(t, repo.Delete(ctx, user.ID))
	assert.Error(t, repo.SetBanned(ctx, user.ID, false))
}

func TestUserRepository_ListAndStats(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, repo.Create(ctx, newUser(email)))
	}
	admin := newUser("admin@example.com")
	admin.Role = entity.RoleAdmin
	require.NoError(t, repo.Create(ctx, admin))
	require.NoError(t, repo.TouchLastActive(ctx, admin.ID, time.Now()))

	page, err := repo.FindAll(ctx, 3, 0)
	require.NoError(t, err)
	assert.Len(t, page, 3)
	assert.Equal(t, "admin@example.com", page[0].Email)

	page, err = repo.FindAll(ctx, 3, 3)
	require.NoError(t, err)
	assert.Len(t, page, 1)

	stats, err := repo.Stats(ctx, time.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, entity.UserStats{Total: 4, Online: 1, Admins: 1, Banned: 0}, *stats)
}
