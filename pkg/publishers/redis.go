package publishers

import (
	"context"
	"fmt"

	"github.com/ctp-hq/event-gateway/pkg/event"
	"github.com/redis/go-redis/v9"
)

// redisClient is the subset of *redis.Client used by redisPublisher.
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// redisPublisher publishes envelopes on a Redis pub/sub channel named after the routing key.
type redisPublisher struct {
	id     string
	typ    string
	prefix string
	client redisClient
	log    Logger
}

func newRedisPublisher(_ context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	if cfg.Redis == nil {
		return nil, fmt.Errorf("publisher %q missing redis configuration", cfg.ID)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return &redisPublisher{
		id:     cfg.ID,
		typ:    TypeRedis,
		prefix: cfg.Redis.ChannelPrefix,
		client: client,
		log:    ensureLogger(log),
	}, nil
}

func (r *redisPublisher) ID() string   { return r.id }
func (r *redisPublisher) Type() string { return r.typ }

func (r *redisPublisher) Publish(ctx context.Context, routingKey string, msg event.Message) error {
	wire, err := encode(routingKey, msg)
	if err != nil {
		return err
	}

	channel := r.prefix + routingKey
	receivers, err := r.client.Publish(ctx, channel, wire.body).Result()
	if err != nil {
		r.log.ErrorObj("redis publisher send failed", "publisher_redis_error", map[string]any{
			"publisher_id":   r.id,
			"channel":        channel,
			"transaction_id": wire.header.TransactionID,
			"error":          err.Error(),
		})
		return fmt.Errorf("publish to redis channel %s: %w", channel, err)
	}
	if receivers == 0 {
		r.log.WarnObj("redis publisher has no subscribers", "publisher_redis_delivery", map[string]any{
			"publisher_id":   r.id,
			"channel":        channel,
			"transaction_id": wire.header.TransactionID,
		})
	}
	return nil
}

func (r *redisPublisher) Close() error { return r.client.Close() }
