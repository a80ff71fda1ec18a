package cache_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/Eddi3MS/delivery-bd/internal/adapter/cache"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func startRedis(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections"),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Terminate(context.Background()) })

	host, err := c.Host(ctx)
	require.NoError(t, err)
	port, err := c.MappedPort(ctx, "6379")
	require.NoError(t, err)
	return fmt.Sprintf("%s:%s", host, port.Port())
}

func TestRedisIdempotencyStore(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a Redis container")
	}
	ctx := context.Background()

	rdb, err := cache.NewRedisClient(ctx, startRedis(t), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	store := cache.NewRedisIdempotencyStore(rdb, time.Minute)
	scope, key := gofakeit.UUID(), gofakeit.UUID()

	_, ok, err := store.Recall(ctx, scope, key)
	require.NoError(t, err)
	assert.False(t, ok)

	locked, err := store.TryLock(ctx, scope, key)
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = store.TryLock(ctx, scope, key)
	require.NoError(t, err)
	assert.False(t, locked, "second lock must fail while in flight")

	require.NoError(t, store.Release(ctx, scope, key))
	locked, err = store.TryLock(ctx, scope, key)
	require.NoError(t, err)
	assert.True(t, locked)

	require.NoError(t, store.Remember(ctx, scope, key, "order-1"))
	got, ok, err := store.Recall(ctx, scope, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "order-1", got)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	_, err := cache.NewRedisClient(ctx, "127.0.0.1:1", "", 0)
	assert.Error(t, err)
}
