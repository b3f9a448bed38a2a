package redis_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"tms/internal/adapters/out/redis"
	"tms/internal/core/domain/model/kernel"
	"tms/internal/core/domain/model/transportorder"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestPublisher_PublishStateChanged(t *testing.T) {
	ctx := context.Background()
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	sub := client.Subscribe(ctx, redis.DefaultChannel)
	t.Cleanup(func() { _ = sub.Close() })
	_, err := sub.Receive(ctx)
	require.NoError(t, err)

	publisher := redis.NewPublisherWithClient(client, "", zap.NewNop())
	id := kernel.NewUUID()
	at := time.Date(2024, 3, 4, 6, 0, 0, 0, time.UTC)

	err = publisher.PublishStateChanged(ctx,
		transportorder.StateChanged{
			OrderID: id, TransportUnit: "4711",
			From: transportorder.Created, To: transportorder.Initialized, OccurredAt: at,
		},
		transportorder.StateChanged{
			OrderID: id, TransportUnit: "4711",
			From: transportorder.Initialized, To: transportorder.Started, OccurredAt: at,
		},
	)
	require.NoError(t, err)

	var received []redis.StateChangedMessage
	for range 2 {
		msgCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		msg, recvErr := sub.ReceiveMessage(msgCtx)
		cancel()
		require.NoError(t, recvErr)

		var decoded redis.StateChangedMessage
		require.NoError(t, json.Unmarshal([]byte(msg.Payload), &decoded))
		received = append(received, decoded)
	}

	assert.Equal(t, id.String(), received[0].OrderID)
	assert.Equal(t, "CREATED", received[0].PreviousState)
	assert.Equal(t, "INITIALIZED", received[0].State)
	assert.Equal(t, "STARTED", received[1].State)
	assert.Equal(t, "4711", received[1].TransportUnit)
	assert.True(t, received[1].OccurredAt.Equal(at))
}

func TestPublisher_ServerDown(t *testing.T) {
	server := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	server.Close()

	publisher := redis.NewPublisherWithClient(client, "custom", zap.NewNop())
	err := publisher.PublishStateChanged(context.Background(), transportorder.StateChanged{
		OrderID: kernel.NewUUID(), From: transportorder.Created, To: transportorder.Canceled,
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to publish state change")
}

func TestNewPublisher(t *testing.T) {
	t.Run("should only log when disabled", func(t *testing.T) {
		core, logs := observer.New(zap.DebugLevel)

		publisher, err := redis.NewPublisher(context.Background(), redis.Config{Enabled: false}, zap.New(core))
		require.NoError(t, err)

		err = publisher.PublishStateChanged(context.Background(), transportorder.StateChanged{
			OrderID: kernel.NewUUID(), From: transportorder.Created, To: transportorder.Canceled,
		})
		require.NoError(t, err)
		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "CANCELED", logs.All()[0].ContextMap()["to"])
		require.NoError(t, publisher.Close())
	})

	t.Run("should connect when enabled", func(t *testing.T) {
		server := miniredis.RunT(t)

		publisher, err := redis.NewPublisher(context.Background(), redis.Config{
			Host:    server.Host(),
			Port:    mustPort(t, server),
			Enabled: true,
		}, zap.NewNop())
		require.NoError(t, err)
		require.NoError(t, publisher.Close())
	})

	t.Run("should fail when Redis is unreachable", func(t *testing.T) {
		server := miniredis.RunT(t)
		port := mustPort(t, server)
		server.Close()

		_, err := redis.NewPublisher(context.Background(), redis.Config{
			Host:    "127.0.0.1",
			Port:    port,
			Enabled: true,
		}, zap.NewNop())
		require.ErrorContains(t, err, "failed to connect to Redis")
	})
}

func mustPort(t *testing.T, server *miniredis.Miniredis) int {
	t.Helper()
	var port int
	_, err := fmt.Sscanf(server.Port(), "%d", &port)
	require.NoError(t, err)
	return port
}
