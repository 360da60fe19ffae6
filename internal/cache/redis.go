package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/Domenick1991/spaceflights/config"
	"github.com/Domenick1991/spaceflights/internal/domain"
	"github.com/redis/go-redis/v9"
)

type RedisCache struct {
	client     *redis.Client
	flightsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, flightsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		flightsTTL: flightsTTL,
	}
}

func (c *RedisCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

var errStaleFlights = errors.New("flights cache generation changed")

// GetFlights returns nil flights on a cache miss. gen is the invalidation
// generation seen by the same read and must be passed back to SetFlights.
func (c *RedisCache) GetFlights(ctx context.Context) (flights []domain.Flight, gen int64, err error) {
	vals, err := c.client.MGet(ctx, flightsKey(), flightsGenKey()).Result()
	if err != nil {
		return nil, 0, err
	}
	if raw, ok := vals[1].(string); ok {
		if gen, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return nil, 0, err
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, gen, nil
	}
	if err := json.Unmarshal([]byte(raw), &flights); err != nil {
		return nil, gen, err
	}
	return flights, gen, nil
}

// SetFlights stores flights unless the cache was invalidated after gen was read.
// A list loaded before a concurrent write is dropped instead of outliving it.
func (c *RedisCache) SetFlights(ctx context.Context, flights []domain.Flight, gen int64) error {
	if c.flightsTTL <= 0 {
		return nil
	}
	payload, err := json.Marshal(flights)
	if err != nil {
		return err
	}

	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, flightsGenKey()).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != gen {
			return errStaleFlights
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, flightsKey(), payload, c.flightsTTL)
			return nil
		})
		return err
	}, flightsGenKey())
	if errors.Is(err, errStaleFlights) || errors.Is(err, redis.TxFailedErr) {
		return nil
	}
	return err
}

func (c *RedisCache) InvalidateFlights(ctx context.Context) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, flightsGenKey())
		pipe.Del(ctx, flightsKey())
		return nil
	})
	return err
}

// RevokeToken remembers a token id until the token would have expired anyway.
func (c *RedisCache) RevokeToken(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return c.client.Set(ctx, revokedTokenKey(jti), "1", ttl).Err()
}

func (c *RedisCache) IsTokenRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := c.client.Exists(ctx, revokedTokenKey(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func flightsKey() string {
	return "cache:space_flights"
}

func flightsGenKey() string {
	return "cache:space_flights:gen"
}

func revokedTokenKey(jti string) string {
	return "auth:revoked:" + jti
}
