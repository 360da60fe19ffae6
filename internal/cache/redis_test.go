package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Domenick1991/spaceflights/config"
	"github.com/stretchr/testify/assert"
)

func TestKeys(t *testing.T) {
	assert.Equal(t, "cache:space_flights", flightsKey())
	assert.Equal(t, "cache:space_flights:gen", flightsGenKey())
	assert.Equal(t, "auth:revoked:abc", revokedTokenKey("abc"))
}

func TestNewRedisCache(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "localhost:6379"}, time.Minute)
	assert.NotNil(t, c)
	assert.NoError(t, c.Close())
}

// Zero TTLs short-circuit before touching the network.
func TestRedisCache_ZeroTTLIsNoop(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1"}, 0)
	defer c.Close()

	assert.NoError(t, c.SetFlights(context.Background(), nil, 0))
	assert.NoError(t, c.RevokeToken(context.Background(), "jti", 0))
}
