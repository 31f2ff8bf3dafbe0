package auth_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	auth "github.com/aegeanlabs/go-userauth"
)

func newTestDB(t *testing.T) *bun.DB {
	t.Helper()

	// a uniquely named memory database keeps tests isolated from each other
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	require.NoError(t, err)
	// one connection so the memory database outlives pool recycling
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() { db.Close() })

	_, err = db.NewCreateTable().
		Model((*auth.User)(nil)).
		IfNotExists().
		Exec(context.Background())
	require.NoError(t, err)

	return db
}

func TestUsersRepository_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("persists with defaults", func(t *testing.T) {
		repo := auth.NewUsersRepository(newTestDB(t))

		created, err := repo.Register(ctx, &auth.User{
			Name:         "Repo User",
			Email:        "repo@example.com",
			PasswordHash: "$2a$12$digest",
		})

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, created.ID)
		assert.Equal(t, auth.RoleUser, created.Role)

		found, err := repo.GetByEmail(ctx, "repo@example.com")
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "$2a$12$digest", found.PasswordHash)

		byID, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "repo@example.com", byID.Email)
	})

	t.Run("duplicate email hits the unique constraint", func(t *testing.T) {
		repo := auth.NewUsersRepository(newTestDB(t))

		_, err := repo.Register(ctx, &auth.User{
			Name:  "First",
			Email: "dup@example.com",
		})
		require.NoError(t, err)

		_, err = repo.Register(ctx, &auth.User{
			Name:  "Second",
			Email: "dup@example.com",
		})

		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})
}

func TestUsersRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := auth.NewUsersRepository(newTestDB(t))

	t.Run("unknown email", func(t *testing.T) {
		_, err := repo.GetByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.FindByID(ctx, uuid.New())
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}

func TestUsersRepository_UpdateRefreshTokens(t *testing.T) {
	ctx := context.Background()

	t.Run("ledger column round-trips", func(t *testing.T) {
		repo := auth.NewUsersRepository(newTestDB(t))

		created, err := repo.Register(ctx, &auth.User{
			Name:         "Ledger User",
			Email:        "ledger@example.com",
			PasswordHash: "$2a$12$digest",
		})
		require.NoError(t, err)
		assert.Empty(t, created.RefreshTokens)

		ledger := []string{"token-one", "token-two", "token-three"}
		require.NoError(t, repo.UpdateRefreshTokens(ctx, created.ID, ledger))

		found, err := repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, ledger, found.RefreshTokens)

		// other columns stay untouched
		assert.Equal(t, "$2a$12$digest", found.PasswordHash)
		assert.Equal(t, "ledger@example.com", found.Email)

		// shrinking the ledger sticks too
		require.NoError(t, repo.UpdateRefreshTokens(ctx, created.ID, []string{"token-three"}))

		found, err = repo.FindByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"token-three"}, found.RefreshTokens)
	})

	t.Run("missing user", func(t *testing.T) {
		repo := auth.NewUsersRepository(newTestDB(t))

		err := repo.UpdateRefreshTokens(ctx, uuid.New(), []string{"token"})

		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}
