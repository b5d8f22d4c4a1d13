//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"rental/infras/otel/mocks"
	"rental/shared/cache"
)

const redisPort = "6379/tcp"

type cachedVehicle struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
}

func startRedis(t *testing.T) *redis.Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{redisPort},
			WaitingFor:   wait.ForListeningPort(nat.Port(redisPort)),
		},
		Started: true,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	endpoint, err := container.PortEndpoint(ctx, nat.Port(redisPort), "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	return client
}

func TestRedisCache(t *testing.T) {
	c := cache.NewRedisCache(startRedis(t), mocks.NewOtel())
	ctx := context.Background()

	t.Run("miss wraps redis nil", func(t *testing.T) {
		var value cachedVehicle

		err := c.Get(ctx, "vehicle:get:missing", &value)

		require.ErrorIs(t, err, cache.Nil)
	})

	t.Run("json round trip", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "vehicle:get:bike-1", cachedVehicle{ID: "bike-1", OwnerID: "op-1"}, 60))

		var value cachedVehicle
		require.NoError(t, c.Get(ctx, "vehicle:get:bike-1", &value))
		assert.Equal(t, "op-1", value.OwnerID)
	})

	t.Run("plain string", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "user:get:op-1", "raw", 60))

		var value string
		require.NoError(t, c.Get(ctx, "user:get:op-1", &value))
		assert.Equal(t, "raw", value)
	})

	t.Run("clear by pattern", func(t *testing.T) {
		require.NoError(t, c.Save(ctx, "vehicle:get:bike-2", cachedVehicle{ID: "bike-2"}, 60))
		require.NoError(t, c.Clear(ctx, "vehicle:get*"))

		var value cachedVehicle
		require.ErrorIs(t, c.Get(ctx, "vehicle:get:bike-2", &value), cache.Nil)

		var kept string
		require.NoError(t, c.Get(ctx, "user:get:op-1", &kept))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, c.Delete(ctx, "user:get:op-1"))

		var value string
		require.ErrorIs(t, c.Get(ctx, "user:get:op-1", &value), cache.Nil)
	})
}
