// Package redis publishes transport order state changes to a Redis pub/sub
// channel as JSON.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tms/internal/core/domain/model/transportorder"

	goredis "github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultChannel is the channel state changes are published to.
const DefaultChannel = "transport-orders.state-changed"

// Config locates the Redis server and the channel events are published to.
type Config struct {
	Host     string
	Port     int
	Password string
	DB       int
	Channel  string
	Enabled  bool
}

// StateChangedMessage is the published payload.
type StateChangedMessage struct {
	OrderID       string    `json:"orderId"`
	TransportUnit string    `json:"transportUnit,omitempty"`
	PreviousState string    `json:"previousState"`
	State         string    `json:"state"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Publisher implements ports.EventPublisher. When disabled it only logs the
// events at debug level.
type Publisher struct {
	client  *goredis.Client
	channel string
	enabled bool
	logger  *zap.Logger
}

// NewPublisher connects to Redis unless cfg.Enabled is false.
func NewPublisher(ctx context.Context, cfg Config, logger *zap.Logger) (*Publisher, error) {
	logger = logger.With(zap.String("component", "event_publisher"))
	if !cfg.Enabled {
		return &Publisher{enabled: false, logger: logger}, nil
	}

	client := goredis.NewClient(&goredis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, "failed to connect to Redis")
	}

	return NewPublisherWithClient(client, cfg.Channel, logger), nil
}

// NewPublisherWithClient publishes through an existing client.
func NewPublisherWithClient(client *goredis.Client, channel string, logger *zap.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{
		client:  client,
		channel: channel,
		enabled: true,
		logger:  logger,
	}
}

// PublishStateChanged publishes one message per event, in order. It stops at
// the first failure.
func (p *Publisher) PublishStateChanged(ctx context.Context, events ...transportorder.StateChanged) error {
	for _, e := range events {
		msg := StateChangedMessage{
			OrderID:       e.OrderID.String(),
			TransportUnit: e.TransportUnit,
			PreviousState: e.From.String(),
			State:         e.To.String(),
			OccurredAt:    e.OccurredAt,
		}

		if !p.enabled {
			p.logger.Debug("transport order state changed",
				zap.String("order_id", msg.OrderID),
				zap.String("from", msg.PreviousState),
				zap.String("to", msg.State))
			continue
		}

		payload, err := json.Marshal(msg)
		if err != nil {
			return errors.Wrap(err, "failed to encode state change")
		}
		if err = p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
			return errors.Wrapf(err, "failed to publish state change of order %s", msg.OrderID)
		}
	}
	return nil
}

// Close releases the Redis client.
func (p *Publisher) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}
