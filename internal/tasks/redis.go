package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds Redis connection configuration.
type RedisConfig struct {
	// URL is a redis:// URL. Password overrides the one in the URL when set.
	URL      string
	Password string
	Channel  string
}

// RedisChannel implements Channel with Redis pub/sub. The last snapshot is also
// stored under "<channel>:last" so new subscribers start from current state.
type RedisChannel struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

// NewRedisChannel connects to Redis and verifies the connection.
func NewRedisChannel(cfg RedisConfig, logger *slog.Logger) (*RedisChannel, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	channel := cfg.Channel
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisChannel{client: client, channel: channel, logger: logger}, nil
}

func (c *RedisChannel) lastKey() string {
	return c.channel + ":last"
}

// Publish stores s as the last snapshot and broadcasts it.
func (c *RedisChannel) Publish(ctx context.Context, s Snapshot) error {
	if s.Tasks == nil {
		s.Tasks = []string{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.lastKey(), data, 0)
	pipe.Publish(ctx, c.channel, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis publish: %w", err)
	}
	return nil
}

// Subscribe delivers the stored snapshot, then every published one.
func (c *RedisChannel) Subscribe(ctx context.Context) (<-chan Snapshot, func(), error) {
	sub := c.client.Subscribe(ctx, c.channel)
	// Wait for the subscription to be confirmed so no publish is missed
	// between reading the last snapshot and listening.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis subscribe: %w", err)
	}

	out := make(chan Snapshot, subscriberBuffer)
	done := make(chan struct{})

	last, err := c.client.Get(ctx, c.lastKey()).Bytes()
	switch {
	case errors.Is(err, redis.Nil):
	case err != nil:
		_ = sub.Close()
		return nil, nil, fmt.Errorf("redis get: %w", err)
	default:
		if s, ok := c.decode(ctx, last); ok {
			out <- s
		}
	}

	go func() {
		defer close(out)
		msgs := sub.Channel()
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				if s, ok := c.decode(ctx, []byte(msg.Payload)); ok {
					deliverOrStop(out, s, done)
				}
			}
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(done)
			_ = sub.Close()
		})
	}
	return out, unsubscribe, nil
}

func (c *RedisChannel) decode(ctx context.Context, data []byte) (Snapshot, bool) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		c.logger.WarnContext(ctx, "dropping malformed task snapshot", "error", err)
		return Snapshot{}, false
	}
	return s, true
}

func deliverOrStop(out chan<- Snapshot, s Snapshot, done <-chan struct{}) {
	select {
	case out <- s:
	case <-done:
	}
}

// Ping checks the Redis connection.
func (c *RedisChannel) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisChannel) Close() error {
	return c.client.Close()
}
