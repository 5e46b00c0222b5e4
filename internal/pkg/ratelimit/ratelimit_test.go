package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinic/internal/config"
)

func TestRedisLimiter(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 2, time.Minute)
	ctx := context.Background()

	t.Run("AllowsUpToLimit", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			ok, err := l.Allow(ctx, "bookings:1.2.3.4")
			require.NoError(t, err)
			assert.True(t, ok)
		}
		ok, err := l.Allow(ctx, "bookings:1.2.3.4")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		ok, err := l.Allow(ctx, "bookings:5.6.7.8")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("WindowExpires", func(t *testing.T) {
		assert.True(t, s.Exists("ratelimit:bookings:1.2.3.4"))
		s.FastForward(2 * time.Minute)

		ok, err := l.Allow(ctx, "bookings:1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestRedisLimiter_WindowAlwaysHasTTL(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()

	l := NewRedisLimiter(client, 2, time.Minute)
	ctx := context.Background()

	_, err = l.Allow(ctx, "messages:1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, s.TTL("ratelimit:messages:1.1.1.1"))

	// later hits keep the original window
	s.FastForward(20 * time.Second)
	_, err = l.Allow(ctx, "messages:1.1.1.1")
	require.NoError(t, err)
	assert.Equal(t, 40*time.Second, s.TTL("ratelimit:messages:1.1.1.1"))

	// a counter stranded without a TTL gets one on the next hit
	require.NoError(t, s.Set("ratelimit:messages:9.9.9.9", "50"))
	ok, err := l.Allow(ctx, "messages:9.9.9.9")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, time.Minute, s.TTL("ratelimit:messages:9.9.9.9"))

	s.FastForward(2 * time.Minute)
	ok, err = l.Allow(ctx, "messages:9.9.9.9")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRedisLimiter_ConnectionError(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: s.Addr()})
	defer client.Close()
	s.Close()

	_, err = NewRedisLimiter(client, 1, time.Minute).Allow(context.Background(), "k")
	assert.Error(t, err)
}

func TestMemoryLimiter(t *testing.T) {
	l := NewMemoryLimiter(0.001, 3)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, _ := l.Allow(ctx, "messages:ip")
		assert.True(t, ok)
	}
	ok, _ := l.Allow(ctx, "messages:ip")
	assert.False(t, ok)

	ok, _ = l.Allow(ctx, "messages:other")
	assert.True(t, ok)
}

func TestMemoryLimiter_EvictsIdleKeys(t *testing.T) {
	l := NewMemoryLimiter(1, 1)
	clock := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return clock }
	l.lastSweep = clock
	ctx := context.Background()

	for _, ip := range []string{"a", "b", "c"} {
		ok, _ := l.Allow(ctx, "bookings:"+ip)
		assert.True(t, ok)
	}
	assert.Equal(t, 3, l.size())

	clock = clock.Add(5 * time.Minute)
	ok, _ := l.Allow(ctx, "bookings:a")
	assert.True(t, ok)
	assert.Equal(t, 3, l.size())

	clock = clock.Add(6 * time.Minute)
	_, _ = l.Allow(ctx, "bookings:d")
	// a was seen 6 minutes ago, b and c 11
	assert.Equal(t, 2, l.size())

	clock = clock.Add(defaultIdleTTL)
	_, _ = l.Allow(ctx, "bookings:d")
	assert.Equal(t, 1, l.size())
}

func TestNew_PicksBackend(t *testing.T) {
	cfg := config.RateLimitConfig{RPS: 1, Burst: 2, Window: time.Minute}

	_, isMemory := New(cfg, nil).(*MemoryLimiter)
	assert.True(t, isMemory)

	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	_, isRedis := New(cfg, client).(*RedisLimiter)
	assert.True(t, isRedis)
}
