package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE session (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return db
}

func TestSQLite_SetThenGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "access_token", "abc"))

	v, ok, err := r.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
}

func TestSQLite_GetMissing(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, ok, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestSQLite_SetOverwrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "username", "old"))
	require.NoError(t, r.Set(ctx, "username", "new"))

	v, _, err := r.Get(ctx, "username")
	require.NoError(t, err)
	assert.Equal(t, "new", v)
}

func TestSQLite_GetMany_OnlyExisting(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "access_token", "abc"))
	require.NoError(t, r.Set(ctx, "user_id", "42"))

	m, err := r.GetMany(ctx, "access_token", "user_id", "email")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"access_token": "abc", "user_id": "42"}, m)

	empty, err := r.GetMany(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSQLite_SetMany_DropsThenWrites(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "username", "previous user"))
	require.NoError(t, r.Set(ctx, "email", "old@example.com"))

	err := r.SetMany(ctx, map[string]string{"access_token": "t1", "email": "new@example.com"}, "username", "email")
	require.NoError(t, err)

	m, err := r.GetMany(ctx, "access_token", "username", "email")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"access_token": "t1", "email": "new@example.com"}, m)
}

func TestSQLite_Delete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Set(ctx, "b", "2"))
	require.NoError(t, r.Delete(ctx, "a", "b"))
	require.NoError(t, r.Delete(ctx, "a", "b"))
	require.NoError(t, r.Delete(ctx))

	m, err := r.GetMany(ctx, "a", "b")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestSQLite_Clear(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "a", "1"))
	require.NoError(t, r.Clear(ctx))
	require.NoError(t, r.Clear(ctx))

	_, ok, err := r.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSQLite_ErrorsAreWrapped(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, _, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get session[k]")

	_, err = r.GetMany(ctx, "k")
	require.ErrorContains(t, err, "failed to read session")

	require.ErrorContains(t, r.Set(ctx, "k", "v"), "failed to set session[k]")
	require.ErrorContains(t, r.SetMany(ctx, map[string]string{"k": "v"}), "failed to write session")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete session")
	require.ErrorContains(t, r.Clear(ctx), "failed to clear session")
}
