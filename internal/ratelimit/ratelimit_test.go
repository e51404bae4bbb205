package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryLimiter(t *testing.T) {
	clock := time.Date(2024, 5, 8, 10, 0, 0, 0, time.UTC)
	m := NewMemory(3, time.Minute)
	m.now = func() time.Time { return clock }
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		ok, err := m.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, _ := m.Allow(ctx, "1.2.3.4")
	assert.False(t, ok)

	ok, _ = m.Allow(ctx, "5.6.7.8")
	assert.True(t, ok, "keys are independent")

	clock = clock.Add(61 * time.Second)
	ok, _ = m.Allow(ctx, "1.2.3.4")
	assert.True(t, ok)
}

func TestMemoryCleanup(t *testing.T) {
	clock := time.Date(2024, 5, 8, 10, 0, 0, 0, time.UTC)
	m := NewMemory(1, time.Minute)
	m.now = func() time.Time { return clock }

	_, _ = m.Allow(context.Background(), "a")
	clock = clock.Add(2 * time.Minute)
	m.cleanup()

	assert.Empty(t, m.requests)
}

var errOffline = errors.New("offline")

// recordingHook captures what the client would send and stops it before
// any network I/O.
type recordingHook struct {
	single    []string
	pipelines [][]redis.Cmder
}

func (h *recordingHook) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	h.single = append(h.single, cmd.Name())
	return ctx, errOffline
}

func (h *recordingHook) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *recordingHook) BeforeProcessPipeline(ctx context.Context, cmds []redis.Cmder) (context.Context, error) {
	h.pipelines = append(h.pipelines, cmds)
	return ctx, errOffline
}

func (h *recordingHook) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func TestRedisSetsExpiryInSameTransaction(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	defer client.Close()
	hook := &recordingHook{}
	client.AddHook(hook)

	r := NewRedis(client, "login:", 3, time.Minute)
	ok, err := r.Allow(context.Background(), "1.2.3.4")
	assert.ErrorIs(t, err, errOffline)
	assert.False(t, ok)

	assert.Empty(t, hook.single)
	require.Len(t, hook.pipelines, 1)

	var names []string
	var setArgs []interface{}
	for _, cmd := range hook.pipelines[0] {
		names = append(names, cmd.Name())
		if cmd.Name() == "set" {
			setArgs = cmd.Args()
		}
	}
	assert.Contains(t, names, "set")
	assert.Contains(t, names, "incr")
	assert.Contains(t, setArgs, "nx")
	assert.Contains(t, setArgs, "login:1.2.3.4")
}

func TestRedisLimiterAgainstServer(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("set TEST_REDIS_URL to run against a real redis")
	}
	opt, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opt)
	defer client.Close()

	ctx := context.Background()
	prefix := fmt.Sprintf("test:%d:", time.Now().UnixNano())
	r := NewRedis(client, prefix, 2, time.Minute)

	for i := 0; i < 2; i++ {
		ok, err := r.Allow(ctx, "ip")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, err := r.Allow(ctx, "ip")
	require.NoError(t, err)
	assert.False(t, ok)

	ttl, err := client.TTL(ctx, prefix+"ip").Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
	assert.LessOrEqual(t, ttl, time.Minute)
}
