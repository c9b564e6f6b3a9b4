package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisRepo needs a live server; set GOPHGIVE_TEST_REDIS_ADDR to run.
func newRedisRepo(t *testing.T) *RedisRepository {
	t.Helper()
	addr := os.Getenv("GOPHGIVE_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("GOPHGIVE_TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())

	r := NewRedisRepository(rdb, "test-"+uuid.NewString())
	t.Cleanup(func() { _ = r.Clear(context.Background()) })
	return r
}

func TestRedis_RoundTrip(t *testing.T) {
	r := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "username", "Budi"))
	v, ok, err := r.Get(ctx, "username")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Budi", v)

	_, ok, err = r.Get(ctx, "email")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_SetManyAndClear(t *testing.T) {
	r := newRedisRepo(t)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "username", "stale"))
	require.NoError(t, r.SetMany(ctx, map[string]string{"access_token": "abc", "user_id": "42"}, "username"))

	m, err := r.GetMany(ctx, "access_token", "user_id", "username")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"access_token": "abc", "user_id": "42"}, m)

	require.NoError(t, r.Clear(ctx))
	m, err = r.GetMany(ctx, "access_token", "user_id")
	require.NoError(t, err)
	assert.Empty(t, m)
}

func TestRedis_ScopesAreIsolated(t *testing.T) {
	a := newRedisRepo(t)
	b := NewRedisRepository(a.rdb, "other-"+uuid.NewString())
	ctx := context.Background()
	t.Cleanup(func() { _ = b.Clear(ctx) })

	require.NoError(t, a.Set(ctx, "access_token", "a"))
	require.NoError(t, b.Set(ctx, "access_token", "b"))
	require.NoError(t, a.Clear(ctx))

	v, ok, err := b.Get(ctx, "access_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "b", v)
}
