package cache

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// closedAddr returns an address nothing listens on.
func closedAddr(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return addr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}), time.Minute)
	defer c.Close()

	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	val, found, err := c.Get(ctx, "key")
	require.NoError(t, err, "a missing key is a miss, not an error")
	assert.False(t, found)
	assert.Empty(t, val)

	require.NoError(t, c.Set(ctx, "key", "classDiagram"))
	assert.True(t, mr.Exists("umlgen:script:key"))
	assert.False(t, mr.Exists("key"))
	assert.Equal(t, time.Minute, mr.TTL("umlgen:script:key"))

	val, found, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "classDiagram", val)

	mr.FastForward(2 * time.Minute)
	_, found, err = c.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, found, "entries expire after the ttl")
}

func TestRedisCacheUnreachable(t *testing.T) {
	c := NewRedisCacheFromClient(redis.NewClient(&redis.Options{
		Addr:        closedAddr(t),
		MaxRetries:  -1,
		DialTimeout: time.Second,
	}), time.Minute)
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	val, found, err := c.Get(ctx, "key")
	assert.Error(t, err)
	assert.False(t, found)
	assert.Empty(t, val)

	assert.Error(t, c.Set(ctx, "key", "classDiagram"))
	assert.Error(t, c.Ping(ctx))
}
