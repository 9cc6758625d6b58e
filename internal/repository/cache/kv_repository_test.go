package cache_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/places-finder/internal/repository/cache"
)

func newTestRedis(t *testing.T) (*cache.Redis, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisFromClient(client, zap.NewNop()), mr
}

func TestKVRepository_PutGetDelete(t *testing.T) {
	r, mr := newTestRedis(t)
	repo := cache.NewKVRepository(r)
	ctx := context.Background()

	val, err := repo.Get(ctx, "filters")
	require.NoError(t, err)
	assert.Nil(t, val)

	require.NoError(t, repo.Put(ctx, "filters", []byte(`["diet:vegan"]`)))

	val, err = repo.Get(ctx, "filters")
	require.NoError(t, err)
	assert.Equal(t, `["diet:vegan"]`, string(val))

	// ключ с префиксом сервиса и без срока жизни
	stored, err := mr.Get("places-finder:filters")
	require.NoError(t, err)
	assert.Equal(t, `["diet:vegan"]`, stored)
	assert.Zero(t, mr.TTL("places-finder:filters"))

	require.NoError(t, repo.Delete(ctx, "filters"))
	val, err = repo.Get(ctx, "filters")
	require.NoError(t, err)
	assert.Nil(t, val)
}

func TestKVRepository_ConnectionError(t *testing.T) {
	r, mr := newTestRedis(t)
	repo := cache.NewKVRepository(r)
	mr.Close()

	_, err := repo.Get(context.Background(), "filters")
	assert.Error(t, err)
	assert.Error(t, repo.Put(context.Background(), "filters", []byte("x")))
}

func TestRedis_Health(t *testing.T) {
	r, mr := newTestRedis(t)

	assert.NoError(t, r.Health(context.Background()))
	mr.Close()
	assert.Error(t, r.Health(context.Background()))
}
