package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"card-orderbook/utils"

	"github.com/redis/go-redis/v9"
)

// redisClient is the subset of *redis.Client the publisher needs
type redisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisPublisher fans events out over Redis pub/sub, one channel per card
type RedisPublisher struct {
	client redisClient
}

// NewRedisClient creates a Redis client for the given server
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MaxRetries:   3,
	})
}

// PingRedis checks the Redis connection
func PingRedis(ctx context.Context, client *redis.Client) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return client.Ping(ctx).Err()
}

func NewRedisPublisher(client redisClient) *RedisPublisher {
	return &RedisPublisher{client: client}
}

// Publish encodes event as JSON and publishes it on the card's channel
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("redis publisher: marshal event: %w", err)
	}

	channel := Channel(event)
	receivers, err := p.client.Publish(ctx, channel, payload).Result()
	if err != nil {
		return fmt.Errorf("redis publisher: publish to %s: %w", channel, err)
	}

	utils.Debug("event published to redis", map[string]any{
		"channel":   channel,
		"type":      string(event.Type),
		"receivers": receivers,
	})
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
