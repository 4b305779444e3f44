package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func openTestStore(t *testing.T) *SessionStore {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "session.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSessionStore_EmptyByDefault(t *testing.T) {
	store := openTestStore(t)

	token, err := store.Token(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionStore_SaveAndRead(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "tok-1"))
	token, err := store.Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-1", token)

	// Saving again overwrites.
	assert.NoError(t, store.Save(ctx, "tok-2"))
	token, err = store.Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-2", token)
}

func TestSessionStore_Clear(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "tok-1"))
	assert.NoError(t, store.Clear(ctx))

	token, err := store.Token(ctx)
	assert.NoError(t, err)
	assert.Empty(t, token)
}

func TestSessionStore_SurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.db")
	ctx := context.Background()

	store, err := Open(path)
	assert.NoError(t, err)
	assert.NoError(t, store.Save(ctx, "tok-persist"))
	assert.NoError(t, store.Close())

	reopened, err := Open(path)
	assert.NoError(t, err)
	defer reopened.Close()

	token, err := reopened.Token(ctx)
	assert.NoError(t, err)
	assert.Equal(t, "tok-persist", token)
}
