package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// RedisClient wraps the Redis client used for pub/sub notifications.
type RedisClient struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewRedisClient connects to Redis at the given URL and verifies the
// connection with a ping.
func NewRedisClient(ctx context.Context, url string, log zerolog.Logger) (*RedisClient, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if _, err := client.Ping(ctx).Result(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Info().Str("addr", opts.Addr).Msg("Connected to Redis")
	return &RedisClient{client: client, log: log}, nil
}

// Publish marshals the message to JSON and publishes it on the channel.
func (r *RedisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	r.log.Debug().Str("channel", channel).RawJSON("message", payload).Msg("Published notification")
	return nil
}

// Close closes the Redis client
func (r *RedisClient) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
