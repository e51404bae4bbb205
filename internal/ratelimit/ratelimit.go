package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// Limiter counts attempts per key within a time window.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// ===============================
// Redis
// ===============================

type Redis struct {
	client *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewRedis(client *redis.Client, prefix string, limit int, window time.Duration) *Redis {
	return &Redis{client: client, prefix: prefix, limit: limit, window: window}
}

// Allow creates the counter with its expiry and increments it in one
// MULTI/EXEC, so a key can never outlive its window. The counter resets
// window after the first attempt.
func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := r.prefix + key

	var incr *redis.IntCmd
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.SetNX(ctx, k, 0, r.window)
		incr = pipe.Incr(ctx, k)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return false, err
	}

	n, err := incr.Result()
	if err != nil {
		return false, err
	}
	return n <= int64(r.limit), nil
}

// ===============================
// In memory
// ===============================

type Memory struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	limit    int
	window   time.Duration
	now      func() time.Time
}

func NewMemory(limit int, window time.Duration) *Memory {
	return &Memory{
		requests: make(map[string][]time.Time),
		limit:    limit,
		window:   window,
		now:      time.Now,
	}
}

// Run drops stale keys every interval until ctx is done.
func (m *Memory) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.cleanup()
		}
	}
}

func (m *Memory) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for key, reqs := range m.requests {
		valid := m.recent(reqs, now)
		if len(valid) == 0 {
			delete(m.requests, key)
		} else {
			m.requests[key] = valid
		}
	}
}

func (m *Memory) recent(reqs []time.Time, now time.Time) []time.Time {
	var valid []time.Time
	for _, t := range reqs {
		if now.Sub(t) < m.window {
			valid = append(valid, t)
		}
	}
	return valid
}

func (m *Memory) Allow(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	valid := m.recent(m.requests[key], now)
	if len(valid) >= m.limit {
		m.requests[key] = valid
		return false, nil
	}

	m.requests[key] = append(valid, now)
	return true, nil
}
