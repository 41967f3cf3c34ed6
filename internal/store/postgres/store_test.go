package postgres

import (
	"ai-chat-backend/internal/models"
	"ai-chat-backend/internal/store"
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestStore connects to TEST_DATABASE_URL or skips the test.
func newTestStore(t *testing.T) *UserStore {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	s := NewUserStore(pool, zap.NewNop())
	require.NoError(t, s.EnsureSchema(ctx))
	return s
}

func TestUserStore_PutAndGet(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	username := "pg-" + uuid.NewString() + "@example.com"

	require.NoError(t, s.PutUser(ctx, &models.User{Username: username, HashedPassword: "first"}))

	user, err := s.GetUserByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, username, user.Username)
	assert.Equal(t, "first", user.HashedPassword)

	require.NoError(t, s.PutUser(ctx, &models.User{Username: username, HashedPassword: "second"}))
	user, err = s.GetUserByUsername(ctx, username)
	require.NoError(t, err)
	assert.Equal(t, "second", user.HashedPassword)
}

func TestUserStore_GetUserByUsername_NotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.GetUserByUsername(context.Background(), "missing-"+uuid.NewString())
	assert.ErrorIs(t, err, store.ErrNotFound)
}
