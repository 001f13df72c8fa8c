package prefs

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revumeapp/revume-cli/internal/logging"
)

func TestSQLiteStore_CRUD(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")

	store := Open(ctx, path, logging.NewDefault())
	_, isSQLite := store.(*SQLiteStore)
	require.True(t, isSQLite)
	t.Cleanup(func() { _ = store.Close() })

	// Missing key degrades to empty default.
	v, err := store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Set(ctx, KeyToken, "tok-1"))
	require.NoError(t, store.Set(ctx, KeyTheme, "dark"))

	v, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", v)

	// Upsert overwrites.
	require.NoError(t, store.Set(ctx, KeyToken, "tok-2"))
	v, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", v)

	require.NoError(t, store.Delete(ctx, KeyToken))
	v, err = store.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, store.Clear(ctx))
	v, err = store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestSQLiteStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "prefs.db")
	log := logging.NewDefault()

	store := Open(ctx, path, log)
	require.NoError(t, store.Set(ctx, KeyToken, "persisted"))
	require.NoError(t, store.Close())

	reopened := Open(ctx, path, log)
	t.Cleanup(func() { _ = reopened.Close() })

	v, err := reopened.Get(ctx, KeyToken)
	require.NoError(t, err)
	assert.Equal(t, "persisted", v)
}

func TestOpen_FallsBackToMemory(t *testing.T) {
	ctx := context.Background()

	// Parent directory does not exist, so the schema setup must fail.
	path := filepath.Join(t.TempDir(), "missing", "sub", "prefs.db")
	store := Open(ctx, path, logging.NewDefault())

	_, isMemory := store.(*MemoryStore)
	assert.True(t, isMemory)

	// The fallback still behaves like a store.
	require.NoError(t, store.Set(ctx, KeyTheme, "light"))
	v, err := store.Get(ctx, KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestMemoryStore_Isolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore()

	require.NoError(t, m.Set(ctx, "k", "v"))
	require.NoError(t, m.Clear(ctx))

	v, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, v)
}
