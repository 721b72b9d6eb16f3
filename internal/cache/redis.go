package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisEnvelope wraps a stored value with its creation timestamp so the
// Redis-backed store can answer Stats and apply the same age check as
// the in-memory store.
type redisEnvelope struct {
	CreatedAt int64           `json:"created_at"`
	Data      json.RawMessage `json:"data"`
}

// Redis is the alternate Store backend, keyed under a prefix so several
// stores can share one database. Entries additionally carry a Redis TTL
// so the server drops them on its own once expired.
type Redis struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

// NewRedis connects to the given Redis address and verifies the
// connection with a ping before returning the store.
func NewRedis(addr, password string, db int, prefix string, ttl time.Duration, logger *slog.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}

	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		logger: logger.With("component", "redis_cache"),
	}, nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	raw, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err == redis.Nil {
		r.logger.Debug("cache miss", "key", key)
		return nil, false, nil
	}
	if err != nil {
		r.logger.Error("cache get failed", "key", key, "error", err)
		return nil, false, err
	}

	var env redisEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, false, fmt.Errorf("decoding cache envelope: %w", err)
	}
	if time.Since(time.UnixMilli(env.CreatedAt)) >= r.ttl {
		return nil, false, nil
	}
	r.logger.Debug("cache hit", "key", key, "size_bytes", len(env.Data))
	return env.Data, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	env := redisEnvelope{CreatedAt: time.Now().UnixMilli(), Data: value}
	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding cache envelope: %w", err)
	}
	if err := r.client.Set(ctx, r.key(key), raw, r.ttl).Err(); err != nil {
		r.logger.Error("cache set failed", "key", key, "error", err)
		return err
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}

func (r *Redis) Clear(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := r.client.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

func (r *Redis) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{Keys: []string{}}

	iter := r.client.Scan(ctx, 0, r.prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		full := iter.Val()
		stats.Keys = append(stats.Keys, strings.TrimPrefix(full, r.prefix))

		raw, err := r.client.Get(ctx, full).Bytes()
		if err != nil {
			continue
		}
		var env redisEnvelope
		if err := json.Unmarshal(raw, &env); err != nil {
			continue
		}
		created := time.UnixMilli(env.CreatedAt)
		if stats.OldestEntry == nil || created.Before(*stats.OldestEntry) {
			t := created
			stats.OldestEntry = &t
		}
		if stats.NewestEntry == nil || created.After(*stats.NewestEntry) {
			t := created
			stats.NewestEntry = &t
		}
	}
	if err := iter.Err(); err != nil {
		return Stats{}, err
	}
	stats.Size = len(stats.Keys)
	sort.Strings(stats.Keys)
	return stats, nil
}
