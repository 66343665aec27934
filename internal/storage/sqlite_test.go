package storage

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	db, err := sql.Open("sqlite3", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv_store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return NewSQLiteRepository(db)
}

func TestGet_MissingKey_ReturnsNilNil(t *testing.T) {
	r := setupRepo(t)

	v, err := r.Get(context.Background(), "nope")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetGet_RoundTrip(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("abc"), v)
}

func TestSet_OverwritesExisting(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("old")))
	require.NoError(t, r.Set(ctx, "token", []byte("new")))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestSetAll_WritesEveryPair(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetAll(ctx, map[string][]byte{
		"user":  []byte(`{"id":1}`),
		"token": []byte("tok"),
	}))

	for key, want := range map[string][]byte{"user": []byte(`{"id":1}`), "token": []byte("tok")} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		require.Equal(t, want, v)
	}
}

func TestDelete(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "token", []byte("abc")))
	require.NoError(t, r.Delete(ctx, "token"))

	v, err := r.Get(ctx, "token")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDelete_MissingKey_NoError(t *testing.T) {
	r := setupRepo(t)
	require.NoError(t, r.Delete(context.Background(), "nope"))
}

func TestClear_RemovesEverything(t *testing.T) {
	r := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, r.SetAll(ctx, map[string][]byte{
		"user":  []byte("u"),
		"token": []byte("t"),
	}))
	require.NoError(t, r.Clear(ctx))

	for _, key := range []string{"user", "token"} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		require.Nil(t, v)
	}
}

func TestOpen_AppliesMigrations(t *testing.T) {
	db, err := Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	r := NewSQLiteRepository(db)
	require.NoError(t, r.Set(context.Background(), "k", []byte("v")))

	v, err := r.Get(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}
