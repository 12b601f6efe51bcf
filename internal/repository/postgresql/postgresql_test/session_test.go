package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/hris-web-go/internal/pkg/session"
	"github.com/cmlabs-hris/hris-web-go/internal/repository/postgresql"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupSessionStore(t *testing.T) session.Store {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	t.Cleanup(setup.Close)
	require.NoError(t, setup.TruncateAllTables(ctx))

	return postgresql.NewSessionRepository(setup.DB, session.NewSealer("test-session-key"))
}

func TestSessionRepository_SetGetClear(t *testing.T) {
	ctx := context.Background()
	store := setupSessionStore(t)
	sid := uuid.NewString()

	_, err := store.GetToken(ctx, sid)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	require.NoError(t, store.SetToken(ctx, sid, "upstream-token", time.Now().Add(time.Hour)))
	token, err := store.GetToken(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "upstream-token", token)

	// Overwrite keeps a single row per session.
	require.NoError(t, store.SetToken(ctx, sid, "rotated-token", time.Now().Add(time.Hour)))
	token, err = store.GetToken(ctx, sid)
	require.NoError(t, err)
	assert.Equal(t, "rotated-token", token)

	require.NoError(t, store.ClearToken(ctx, sid))
	_, err = store.GetToken(ctx, sid)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestSessionRepository_PurgeExpired(t *testing.T) {
	ctx := context.Background()
	store := setupSessionStore(t)

	expired := uuid.NewString()
	live := uuid.NewString()
	require.NoError(t, store.SetToken(ctx, expired, "t1", time.Now().Add(-time.Minute)))
	require.NoError(t, store.SetToken(ctx, live, "t2", time.Now().Add(time.Hour)))

	_, err := store.GetToken(ctx, expired)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)

	removed, err := store.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	token, err := store.GetToken(ctx, live)
	require.NoError(t, err)
	assert.Equal(t, "t2", token)
}
