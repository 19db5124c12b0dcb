package store

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apper-canvas/stylehub-port-matrix/pkg/config"
)

func openTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("STYLEHUB_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("STYLEHUB_TEST_REDIS_ADDR is not set")
	}

	s, err := NewRedis(context.Background(), config.RedisConfig{Address: addr, DB: 15})
	require.NoError(t, err)
	t.Cleanup(func() {
		s.raw.FlushDB(context.Background())
		s.Close()
	})
	return s
}

func TestRedisStoreRoundTrip(t *testing.T) {
	s := openTestRedisStore(t)
	ctx := context.Background()

	in := []record{{ID: 1, Name: "tee"}}
	require.NoError(t, s.Save(ctx, CollectionProducts, in))

	var out []record
	require.NoError(t, s.Load(ctx, CollectionProducts, &out))
	assert.Equal(t, in, out)
}

func TestRedisStoreCounter(t *testing.T) {
	s := openTestRedisStore(t)
	ctx := context.Background()

	id, err := s.NextID(ctx, CollectionCart)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	require.NoError(t, s.AdvanceCounter(ctx, CollectionCart, 10))
	id, err = s.NextID(ctx, CollectionCart)
	require.NoError(t, err)
	assert.Equal(t, int64(11), id)

	// Advancing backwards never rewinds the counter.
	require.NoError(t, s.AdvanceCounter(ctx, CollectionCart, 3))
	id, err = s.NextID(ctx, CollectionCart)
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
}

func TestRedisStoreLoadAbsentCollection(t *testing.T) {
	s := openTestRedisStore(t)

	var out []record
	require.NoError(t, s.Load(context.Background(), CollectionWishlist, &out))
	assert.Empty(t, out)
}
