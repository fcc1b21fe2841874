package state

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	coreconfig "github.com/m3rciful/portfoliobot/core/config"
	"github.com/m3rciful/portfoliobot/core/logger"
)

// NewRedisClient builds a universal client and verifies the connection.
// One address gives a single-node client, several give a cluster client,
// and MasterName switches to sentinel failover.
func NewRedisClient(ctx context.Context, cfg coreconfig.RedisConfig) (redis.UniversalClient, error) {
	client := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        cfg.Addresses,
		Password:     cfg.Password,
		DB:           cfg.DB,
		MasterName:   cfg.MasterName,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	logger.Session.Info("redis connected",
		slog.String("event", "redis.connect"),
		slog.String("backend", coreconfig.SessionRedis),
		slog.Int("nodes", len(cfg.Addresses)),
		slog.String("master", cfg.MasterName),
	)
	return client, nil
}

// RedisStore keeps conversations in redis under <prefix><chatID>.
type RedisStore[S any] struct {
	client redis.UniversalClient
	codec  Codec[S]
	prefix string
	ttl    time.Duration
}

// NewRedisStore wraps client as a Store.
func NewRedisStore[S any](client redis.UniversalClient, codec Codec[S], prefix string, opts Options) *RedisStore[S] {
	return &RedisStore[S]{client: client, codec: codec, prefix: prefix, ttl: opts.TTL}
}

func (r *RedisStore[S]) key(chatID int64) string {
	return r.prefix + strconv.FormatInt(chatID, 10)
}

// Get loads the conversation for chatID. Undecodable payloads read as idle.
func (r *RedisStore[S]) Get(ctx context.Context, chatID int64) (S, bool, error) {
	var zero S
	data, err := r.client.Get(ctx, r.key(chatID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, fmt.Errorf("redis get: %w", err)
	}
	value, ok := decodeOrIdle(ctx, r.codec, coreconfig.SessionRedis, chatID, data)
	return value, ok, nil
}

// Set stores the conversation for chatID, refreshing its TTL.
func (r *RedisStore[S]) Set(ctx context.Context, chatID int64, value S) error {
	data, err := r.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(chatID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Delete removes the conversation for chatID.
func (r *RedisStore[S]) Delete(ctx context.Context, chatID int64) error {
	if err := r.client.Del(ctx, r.key(chatID)).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
