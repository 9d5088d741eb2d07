package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/staff-directory-api/internal/models"
)

// DefaultChannel is the Redis channel notifications are published on
const DefaultChannel = "staffdir:notifications"

// NewRedisClient connects to Redis. An unreachable server is logged, not
// fatal: publishing simply fails until it comes up.
func NewRedisClient(addr, password string, log zerolog.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("Unable to reach redis")
	} else {
		log.Info().Str("addr", addr).Msg("Connected to redis")
	}
	return client
}

// RedisPublisher publishes notifications as JSON on a Redis channel
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisPublisher creates a publisher; an empty channel means DefaultChannel
func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

// Handle is a Handler that publishes n
func (p *RedisPublisher) Handle(ctx context.Context, n models.Notification) error {
	if p == nil || p.client == nil {
		return errors.New("redis client not configured")
	}
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %s: %w", p.channel, err)
	}
	return nil
}

// Watch subscribes to channel and calls fn for every decodable notification
// until ctx is done
func Watch(ctx context.Context, client redis.UniversalClient, channel string, fn func(models.Notification)) error {
	if channel == "" {
		channel = DefaultChannel
	}
	sub := client.Subscribe(ctx, channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", channel, err)
	}

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var n models.Notification
			if err := json.Unmarshal([]byte(msg.Payload), &n); err != nil {
				continue
			}
			fn(n)
		}
	}
}
